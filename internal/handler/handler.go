package handler

import (
	"github.com/go-telegram/bot"

	"github.com/davrell/clauderelay/internal/config"
	"github.com/davrell/clauderelay/internal/service"
	"github.com/davrell/clauderelay/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot           *bot.Bot
	cfg           *config.Config
	conversations *service.ConversationService
	notifier      *telegram.Notifier
	botUsername   string
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot           *bot.Bot
	Cfg           *config.Config
	Conversations *service.ConversationService
	Notifier      *telegram.Notifier
	BotUsername   string
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:           deps.Bot,
		cfg:           deps.Cfg,
		conversations: deps.Conversations,
		notifier:      deps.Notifier,
		botUsername:   deps.BotUsername,
	}
}
