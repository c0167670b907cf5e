package domain

import "errors"

var (
	ErrAlreadyActive        = errors.New("conversation already active in this chat")
	ErrNoActiveConversation = errors.New("no active conversation in this chat")
	ErrNothingToRegenerate  = errors.New("no assistant reply to regenerate")
	ErrConversationPaused   = errors.New("conversation is paused")
	ErrConversationEnded    = errors.New("conversation has ended")
	ErrInvalidParameters    = errors.New("invalid sampling parameters")
	ErrModelNotFound        = errors.New("model not found")
	ErrEmptyPrompt          = errors.New("prompt is empty")
)
