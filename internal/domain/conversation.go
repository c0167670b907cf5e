package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Attachment is an opaque file pulled from the chat platform, kept as raw
// bytes until the request builder encodes it for the upstream API.
type Attachment struct {
	MediaType string
	Filename  string
	Data      []byte
}

// Turn is one message in the exchange. Immutable once appended, with the
// single exception of coalescing (see Conversation.AppendUser).
type Turn struct {
	Role        Role
	Text        string
	Attachments []Attachment
}

// SamplingParameters is the per-conversation snapshot of generation knobs.
// Nil pointer fields are unset and must be omitted from the wire payload.
type SamplingParameters struct {
	Model       Model
	System      string
	MaxTokens   int
	Temperature *float64
	TopP        *float64
	TopK        *int
}

// Validate checks the parameters against their declared ranges. It returns
// an error wrapping ErrInvalidParameters so callers can classify it.
func (p SamplingParameters) Validate() error {
	if !p.Model.Valid() {
		return fmt.Errorf("%w: unknown model %q", ErrInvalidParameters, p.Model)
	}
	if p.MaxTokens <= 0 {
		return fmt.Errorf("%w: max_tokens must be positive, got %d", ErrInvalidParameters, p.MaxTokens)
	}
	if p.Temperature != nil && (*p.Temperature < 0 || *p.Temperature > 1) {
		return fmt.Errorf("%w: temperature %v outside [0,1]", ErrInvalidParameters, *p.Temperature)
	}
	if p.TopP != nil && (*p.TopP < 0 || *p.TopP > 1) {
		return fmt.Errorf("%w: top_p %v outside [0,1]", ErrInvalidParameters, *p.TopP)
	}
	if p.TopK != nil && *p.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive, got %d", ErrInvalidParameters, *p.TopK)
	}
	return nil
}

type ConversationState string

const (
	StateActive ConversationState = "active"
	StatePaused ConversationState = "paused"
	StateEnded  ConversationState = "ended"
)

// Conversation is the in-memory record of one ongoing exchange, scoped to
// one Telegram chat. It is not safe for concurrent use; the registry
// serializes access per chat.
type Conversation struct {
	ID        uuid.UUID
	ChatID    int64
	Params    SamplingParameters
	Turns     []Turn
	State     ConversationState
	ShowUsage bool
	CreatedAt time.Time
}

func NewConversation(chatID int64, params SamplingParameters) *Conversation {
	return &Conversation{
		ID:        uuid.New(),
		ChatID:    chatID,
		Params:    params,
		State:     StateActive,
		CreatedAt: time.Now(),
	}
}

// AppendUser appends a user turn. When the last turn is an unanswered user
// turn (a failed upstream call left it pending), the new text and
// attachments are coalesced into it so the history keeps strict
// user/assistant alternation.
func (c *Conversation) AppendUser(turn Turn) {
	if n := len(c.Turns); n > 0 && c.Turns[n-1].Role == RoleUser {
		last := &c.Turns[n-1]
		if turn.Text != "" {
			last.Text = strings.TrimSpace(last.Text + "\n" + turn.Text)
		}
		last.Attachments = append(last.Attachments, turn.Attachments...)
		return
	}
	turn.Role = RoleUser
	c.Turns = append(c.Turns, turn)
}

// AppendAssistant appends the assistant reply. The history must end with a
// user turn; anything else indicates an integrator bug.
func (c *Conversation) AppendAssistant(text string) error {
	n := len(c.Turns)
	if n == 0 || c.Turns[n-1].Role != RoleUser {
		return fmt.Errorf("assistant turn without pending user turn (history length %d)", n)
	}
	c.Turns = append(c.Turns, Turn{Role: RoleAssistant, Text: text})
	return nil
}

// DropLastAssistant removes the trailing assistant turn so the preceding
// user turn can be resent. Used by regenerate.
func (c *Conversation) DropLastAssistant() error {
	n := len(c.Turns)
	if n == 0 || c.Turns[n-1].Role != RoleAssistant {
		return ErrNothingToRegenerate
	}
	c.Turns = c.Turns[:n-1]
	return nil
}

func (c *Conversation) Pause() error {
	switch c.State {
	case StateActive:
		c.State = StatePaused
		return nil
	case StatePaused:
		return ErrConversationPaused
	default:
		return ErrConversationEnded
	}
}

func (c *Conversation) Resume() error {
	switch c.State {
	case StatePaused:
		c.State = StateActive
		return nil
	case StateActive:
		return nil
	default:
		return ErrConversationEnded
	}
}

// End marks the conversation terminal. Valid from any state.
func (c *Conversation) End() {
	c.State = StateEnded
}
