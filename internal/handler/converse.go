package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/davrell/clauderelay/internal/config"
	"github.com/davrell/clauderelay/internal/domain"
	tg "github.com/davrell/clauderelay/internal/telegram"
)

// handleConverse starts a conversation: parse options, relay the first
// turn, reply with a summary plus the model's response and the control
// keyboard.
func (h *Handler) handleConverse(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	msg := update.Message
	chatID := msg.Chat.ID

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	args := stripCommand(text, "/converse", h.botUsername)

	opts, prompt, err := ParseConverseArgs(args)
	if err != nil {
		h.reportRelayError(ctx, b, chatID, err, false)
		return
	}
	if prompt == "" && len(msg.Photo) == 0 && msg.Document == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "ℹ️ Usage: /converse [model=...] [system=\"...\"] [temperature=...] <prompt>",
		})
		return
	}

	params := opts.Params(h.cfg.Model())

	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	first := domain.Turn{
		Text:        prompt,
		Attachments: h.attachmentsFromMessage(ctx, b, msg),
	}

	reqCtx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	conv, reply, err := h.conversations.Start(reqCtx, chatID, params, first, opts.ShowUsage)
	if err != nil {
		h.reportRelayError(ctx, b, chatID, err, false)
		return
	}

	summary := startSummary(conv)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      summary,
		ParseMode: models.ParseModeMarkdownV1,
	})

	h.deliverReply(ctx, b, chatID, nil, reply)
}

// startSummary renders the "conversation started" header echoing the
// effective parameters, omitting the ones left unset.
func startSummary(conv *domain.Conversation) string {
	p := conv.Params
	var sb strings.Builder
	sb.WriteString("💬 *Conversation started*\n")
	fmt.Fprintf(&sb, "Model: %s\n", p.Model)
	if p.System != "" {
		fmt.Fprintf(&sb, "System: %s\n", truncate(p.System, 500))
	}
	fmt.Fprintf(&sb, "Max tokens: %d\n", p.MaxTokens)
	if p.Temperature != nil {
		fmt.Fprintf(&sb, "Temperature: %g\n", *p.Temperature)
	}
	if p.TopP != nil {
		fmt.Fprintf(&sb, "Top P: %g\n", *p.TopP)
	}
	if p.TopK != nil {
		fmt.Fprintf(&sb, "Top K: %d\n", *p.TopK)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// stripCommand removes the leading command (with optional @botname
// suffix) from message text.
func stripCommand(text, command, botUsername string) string {
	rest := strings.TrimPrefix(text, command)
	if botUsername != "" {
		rest = strings.TrimPrefix(rest, "@"+botUsername)
	}
	return strings.TrimSpace(rest)
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
