package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const helpText = "👋 Hi! I relay this chat to Claude.\n\n" +
	"📋 *Commands:*\n" +
	"/converse <prompt> — Start a conversation\n" +
	"/models — List supported models\n" +
	"/status — Show the current conversation\n" +
	"/end — End the conversation\n\n" +
	"*Options* (before the prompt, key=value):\n" +
	"`model=` `system=\"...\"` `max_tokens=` `temperature=` `top_p=` `top_k=` `usage=on`\n\n" +
	"While a conversation is active, every plain message here is a " +
	"follow-up turn. Attach a photo, PDF or text file to include it. " +
	"Use the buttons under each reply to regenerate, pause, resume or end."

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      helpText,
		ParseMode: models.ParseModeMarkdownV1,
	})
}
