package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/davrell/clauderelay/internal/anthropic"
	"github.com/davrell/clauderelay/internal/domain"
)

// Upstream is the LLM API boundary. The production implementation is
// *anthropic.Client; tests substitute a fake.
type Upstream interface {
	CreateMessage(ctx context.Context, req *anthropic.MessagesRequest) (*anthropic.MessagesResponse, error)
}

// Reply is what a successful relay produces for display.
type Reply struct {
	Text      string
	Model     domain.Model
	Usage     anthropic.Usage
	ShowUsage bool
	// Discarded is set when the conversation ended while the request was
	// in flight; the response must not be shown.
	Discarded bool
}

// ConversationService owns the relay pipeline: look up the conversation,
// mutate pending state under the per-chat lock, make the one upstream
// call outside it, then integrate the response under the lock again.
type ConversationService struct {
	registry *ConversationRegistry
	upstream Upstream
}

func NewConversationService(registry *ConversationRegistry, upstream Upstream) *ConversationService {
	return &ConversationService{registry: registry, upstream: upstream}
}

func (s *ConversationService) Registry() *ConversationRegistry {
	return s.registry
}

// Start creates a conversation for the chat with the first user turn and
// relays it. Parameter validation happens before anything is registered,
// so invalid input never creates state.
func (s *ConversationService) Start(ctx context.Context, chatID int64, params domain.SamplingParameters, first domain.Turn, showUsage bool) (*domain.Conversation, *Reply, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	if first.Text == "" && len(first.Attachments) == 0 {
		return nil, nil, domain.ErrEmptyPrompt
	}
	conv := domain.NewConversation(chatID, params)
	conv.ShowUsage = showUsage
	conv.AppendUser(first)
	if err := s.registry.Create(chatID, conv); err != nil {
		return nil, nil, err
	}
	slog.Info("conversation started",
		"conversation_id", conv.ID,
		"chat_id", chatID,
		"model", params.Model,
	)
	reply, err := s.relay(ctx, chatID, nil)
	if err != nil {
		// The conversation stays registered with the user turn pending;
		// the next message coalesces into it and retries.
		return conv, nil, err
	}
	return conv, reply, nil
}

// Send appends a follow-up user turn and relays the updated history.
func (s *ConversationService) Send(ctx context.Context, chatID int64, turn domain.Turn) (*Reply, error) {
	return s.relay(ctx, chatID, func(conv *domain.Conversation) error {
		if err := requireActive(conv); err != nil {
			return err
		}
		conv.AppendUser(turn)
		return nil
	})
}

// Regenerate discards the last assistant turn and resends the preceding
// user turn. The rebuilt request is exactly the request that the history
// minus that assistant turn would produce.
func (s *ConversationService) Regenerate(ctx context.Context, chatID int64) (*Reply, error) {
	return s.relay(ctx, chatID, func(conv *domain.Conversation) error {
		if err := requireActive(conv); err != nil {
			return err
		}
		return conv.DropLastAssistant()
	})
}

func (s *ConversationService) Pause(chatID int64) error {
	return s.registry.With(chatID, func(conv *domain.Conversation) error {
		return conv.Pause()
	})
}

func (s *ConversationService) Resume(chatID int64) error {
	return s.registry.With(chatID, func(conv *domain.Conversation) error {
		return conv.Resume()
	})
}

// End marks the conversation terminal and removes it from the registry.
// A response still in flight for this chat will be discarded when it
// arrives.
func (s *ConversationService) End(chatID int64) error {
	err := s.registry.With(chatID, func(conv *domain.Conversation) error {
		conv.End()
		slog.Info("conversation ended", "conversation_id", conv.ID, "chat_id", chatID)
		return nil
	})
	if err != nil {
		return err
	}
	s.registry.Remove(chatID)
	return nil
}

// Status is a read-only snapshot for the /status command.
type Status struct {
	ID        uuid.UUID
	State     domain.ConversationState
	Model     domain.Model
	Turns     int
	CreatedAt time.Time
}

func (s *ConversationService) Status(chatID int64) (Status, error) {
	var st Status
	err := s.registry.With(chatID, func(conv *domain.Conversation) error {
		st = Status{
			ID:        conv.ID,
			State:     conv.State,
			Model:     conv.Params.Model,
			Turns:     len(conv.Turns),
			CreatedAt: conv.CreatedAt,
		}
		return nil
	})
	return st, err
}

func requireActive(conv *domain.Conversation) error {
	switch conv.State {
	case domain.StatePaused:
		return domain.ErrConversationPaused
	case domain.StateEnded:
		return domain.ErrConversationEnded
	}
	return nil
}

// relay is the pipeline shared by Start, Send and Regenerate: a
// synchronous prelude under the per-chat lock (prepare + build), the one
// awaited upstream call, and a synchronous completion under the lock.
func (s *ConversationService) relay(ctx context.Context, chatID int64, prepare func(*domain.Conversation) error) (*Reply, error) {
	var (
		req       *anthropic.MessagesRequest
		model     domain.Model
		showUsage bool
	)
	err := s.registry.With(chatID, func(conv *domain.Conversation) error {
		if prepare != nil {
			if err := prepare(conv); err != nil {
				return err
			}
		}
		built, err := BuildRequest(conv)
		if err != nil {
			return err
		}
		req = built
		model = conv.Params.Model
		showUsage = conv.ShowUsage
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("relaying to upstream", "chat_id", chatID, "model", model, "messages", len(req.Messages))

	resp, err := s.upstream.CreateMessage(ctx, req)
	if err != nil {
		// History keeps the pending user turn so a retry resends it.
		return nil, err
	}

	text := resp.Text()
	if text == "" {
		text = "No response."
	}
	reply := &Reply{Text: text, Model: model, Usage: resp.Usage, ShowUsage: showUsage}

	err = s.registry.With(chatID, func(conv *domain.Conversation) error {
		// End flips the state before it removes the entry; a reply that
		// was waiting for the lock can land in between.
		if conv.State == domain.StateEnded {
			return domain.ErrConversationEnded
		}
		return conv.AppendAssistant(text)
	})
	if errors.Is(err, domain.ErrNoActiveConversation) || errors.Is(err, domain.ErrConversationEnded) {
		// Ended while in flight; treat as implicit cancellation.
		slog.Info("discarding response for ended conversation", "chat_id", chatID)
		reply.Discarded = true
		return reply, nil
	}
	if err != nil {
		return nil, err
	}
	return reply, nil
}
