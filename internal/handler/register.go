package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Callback actions carried by the conversation control buttons.
const (
	cbRegenerate = "conv_regen"
	cbPause      = "conv_pause"
	cbResume     = "conv_resume"
	cbEnd        = "conv_end"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/converse", bot.MatchTypePrefix, h.handleConverse)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/models", bot.MatchTypePrefix, h.handleModels)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/status", bot.MatchTypePrefix, h.handleStatus)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/end", bot.MatchTypePrefix, h.handleEnd)

	// Conversation control callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbRegenerate, bot.MatchTypeExact, h.handleRegenerate)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbPause, bot.MatchTypeExact, h.handlePause)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbResume, bot.MatchTypeExact, h.handleResume)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbEnd, bot.MatchTypeExact, h.handleEndCallback)
}

func (h *Handler) answerCallback(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	if update.CallbackQuery == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
		Text:            text,
	})
}
