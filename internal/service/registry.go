package service

import (
	"sync"

	"github.com/davrell/clauderelay/internal/domain"
)

// ConversationRegistry maps chat ids to their active conversation. Access
// to a given conversation is serialized through a per-entry mutex, so
// unrelated chats never contend with each other; the registry-level lock
// only guards the map itself and is never held across an upstream call.
type ConversationRegistry struct {
	mu      sync.RWMutex
	entries map[int64]*registryEntry
}

type registryEntry struct {
	mu   sync.Mutex
	conv *domain.Conversation
}

func NewConversationRegistry() *ConversationRegistry {
	return &ConversationRegistry{entries: make(map[int64]*registryEntry)}
}

// Create registers a new conversation for the chat. It fails with
// ErrAlreadyActive when the chat already has one.
func (r *ConversationRegistry) Create(chatID int64, conv *domain.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[chatID]; ok {
		return domain.ErrAlreadyActive
	}
	r.entries[chatID] = &registryEntry{conv: conv}
	return nil
}

// Get returns the conversation for the chat, if any. The returned pointer
// must only be mutated inside With.
func (r *ConversationRegistry) Get(chatID int64) (*domain.Conversation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[chatID]
	if !ok {
		return nil, false
	}
	return entry.conv, true
}

// Remove drops the chat's conversation. Removing an absent chat is a no-op.
func (r *ConversationRegistry) Remove(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, chatID)
}

// With runs fn with the chat's conversation under the per-chat lock. It
// returns ErrNoActiveConversation when the chat has no conversation, or
// when the conversation was removed while waiting for the lock. Callers
// use the latter to discard in-flight responses after an end action.
func (r *ConversationRegistry) With(chatID int64, fn func(*domain.Conversation) error) error {
	r.mu.RLock()
	entry, ok := r.entries[chatID]
	r.mu.RUnlock()
	if !ok {
		return domain.ErrNoActiveConversation
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	// The entry may have been removed between the lookup and the lock.
	r.mu.RLock()
	current, ok := r.entries[chatID]
	r.mu.RUnlock()
	if !ok || current != entry {
		return domain.ErrNoActiveConversation
	}

	return fn(entry.conv)
}

// Len reports the number of active conversations.
func (r *ConversationRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
