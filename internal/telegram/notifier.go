package telegram

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
)

// Notifier mirrors upstream failures into an optional admin chat so
// operators see them without tailing logs. A zero chat ID disables it.
type Notifier struct {
	bot    *bot.Bot
	chatID int64
}

func NewNotifier(b *bot.Bot, chatID int64) *Notifier {
	return &Notifier{bot: b, chatID: chatID}
}

func (n *Notifier) NotifyError(message string) {
	if n.chatID == 0 {
		return
	}

	if len([]rune(message)) > MaxMessageLen {
		message = string([]rune(message)[:MaxMessageLen-20]) + "\n\n... (truncated)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   message,
	})
	if err != nil {
		slog.Error("failed to send admin notice", "error", err)
	}
}
