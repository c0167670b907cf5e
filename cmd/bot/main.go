package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/davrell/clauderelay/internal/anthropic"
	"github.com/davrell/clauderelay/internal/config"
	"github.com/davrell/clauderelay/internal/handler"
	"github.com/davrell/clauderelay/internal/middleware"
	"github.com/davrell/clauderelay/internal/service"
	"github.com/davrell/clauderelay/internal/telegram"
)

func main() {
	// Load configuration first so the log level is known
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Upstream client and conversation core
	upstream := anthropic.NewClient(cfg.AnthropicAPIKey,
		anthropic.WithBaseURL(cfg.AnthropicBaseURL),
		anthropic.WithTimeout(config.RequestTimeout),
	)
	registry := service.NewConversationRegistry()
	conversations := service.NewConversationService(registry, upstream)

	// Handler pointer for use in default handler closure
	var h *handler.Handler

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil {
				return
			}
			// Photo and document messages don't match text handlers;
			// route them (and any other plain message) as follow-ups.
			if update.Message != nil {
				h.HandleMessage(ctx, b, update)
			}
		}),
	}
	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	// Optional admin error notifier
	notifier := telegram.NewNotifier(b, cfg.LogTelegramChatID)

	// Initialize handler
	h = handler.New(handler.Deps{
		Bot:           b,
		Cfg:           cfg,
		Conversations: conversations,
		Notifier:      notifier,
		BotUsername:   me.Username,
	})

	// Register all handlers
	h.Register()

	// Register default text handler for follow-up messages
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		h.HandleMessage(ctx, b, update)
	})

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	// Graceful shutdown
	slog.Info("bot stopped gracefully", "active_conversations", registry.Len())
}
