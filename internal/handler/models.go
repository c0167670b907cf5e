package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/davrell/clauderelay/internal/domain"
)

func (h *Handler) handleModels(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString("🤖 *Supported models* (prices per 1M tokens):\n\n")
	for _, info := range domain.Models() {
		marker := " "
		if info.ID == h.cfg.Model() {
			marker = "⭐"
		}
		fmt.Fprintf(&sb, "%s *%s*\n`%s`\n$%.2f in / $%.2f out", marker, info.Name, info.ID, info.PromptPrice, info.CompletionPrice)
		var caps []string
		if info.Capabilities.Vision {
			caps = append(caps, "vision")
		}
		if info.Capabilities.PDF {
			caps = append(caps, "pdf")
		}
		if len(caps) > 0 {
			fmt.Fprintf(&sb, " · %s", strings.Join(caps, ", "))
		}
		sb.WriteString("\n\n")
	}
	sb.WriteString("Pick one with `/converse model=<id> <prompt>`")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      sb.String(),
		ParseMode: models.ParseModeMarkdownV1,
	})
}
