package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/davrell/clauderelay/internal/config"
	tg "github.com/davrell/clauderelay/internal/telegram"
)

// callbackChatID extracts the chat the pressed button belongs to.
func callbackChatID(update *models.Update) (int64, int, bool) {
	if update.CallbackQuery == nil || update.CallbackQuery.Message.Message == nil {
		return 0, 0, false
	}
	m := update.CallbackQuery.Message.Message
	return m.Chat.ID, m.ID, true
}

func (h *Handler) handleRegenerate(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, _, ok := callbackChatID(update)
	if !ok {
		return
	}
	h.answerCallback(ctx, b, update, "Regenerating…")

	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	reqCtx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	reply, err := h.conversations.Regenerate(reqCtx, chatID)
	if err != nil {
		h.reportRelayError(ctx, b, chatID, err, false)
		return
	}
	h.deliverReply(ctx, b, chatID, nil, reply)
}

func (h *Handler) handlePause(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, msgID, ok := callbackChatID(update)
	if !ok {
		return
	}
	if err := h.conversations.Pause(chatID); err != nil {
		h.answerCallback(ctx, b, update, "")
		h.reportRelayError(ctx, b, chatID, err, false)
		return
	}
	h.answerCallback(ctx, b, update, "Paused")
	b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      chatID,
		MessageID:   msgID,
		ReplyMarkup: controlsKeyboard(true),
	})
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "⏸ Conversation paused. Messages are ignored until you resume.",
	})
}

func (h *Handler) handleResume(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, msgID, ok := callbackChatID(update)
	if !ok {
		return
	}
	if err := h.conversations.Resume(chatID); err != nil {
		h.answerCallback(ctx, b, update, "")
		h.reportRelayError(ctx, b, chatID, err, false)
		return
	}
	h.answerCallback(ctx, b, update, "Resumed")
	b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      chatID,
		MessageID:   msgID,
		ReplyMarkup: controlsKeyboard(false),
	})
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "▶️ Conversation resumed.",
	})
}

func (h *Handler) handleEndCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, msgID, ok := callbackChatID(update)
	if !ok {
		return
	}
	if err := h.conversations.End(chatID); err != nil {
		h.answerCallback(ctx, b, update, "")
		h.reportRelayError(ctx, b, chatID, err, false)
		return
	}
	h.answerCallback(ctx, b, update, "Conversation ended")
	// Strip the controls from the message the button lived on.
	b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      chatID,
		MessageID:   msgID,
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{}},
	})
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "⏹ Conversation ended. Start a new one with /converse.",
	})
}
