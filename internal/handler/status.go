package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/davrell/clauderelay/internal/domain"
)

func (h *Handler) handleStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	st, err := h.conversations.Status(chatID)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveConversation) {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "ℹ️ No active conversation here. Start one with /converse.",
			})
			return
		}
		h.reportRelayError(ctx, b, chatID, err, false)
		return
	}

	text := fmt.Sprintf(
		"💬 *Conversation status*\nState: %s\nModel: %s\nTurns: %d\nStarted: %s",
		st.State, st.Model, st.Turns, st.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	})
}
