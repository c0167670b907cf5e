package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/davrell/clauderelay/internal/config"
	"github.com/davrell/clauderelay/internal/domain"
	tg "github.com/davrell/clauderelay/internal/telegram"
)

// HandleMessage processes plain messages (text, photo, document) as
// follow-up turns of the chat's conversation. Chats without a
// conversation and paused conversations drop the message silently.
func (h *Handler) HandleMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	msg := update.Message
	chatID := msg.Chat.ID

	text := msg.Text
	if text == "" {
		text = msg.Caption
		// Media messages can carry the start command in the caption;
		// they never reach the registered text handlers.
		if strings.HasPrefix(text, "/converse") {
			h.handleConverse(ctx, b, update)
			return
		}
	}
	if strings.HasPrefix(text, "/") {
		return
	}

	// Cheap pre-check before downloading attachments; the authoritative
	// state check happens under the per-chat lock in Send.
	conv, ok := h.conversations.Registry().Get(chatID)
	if !ok || conv.State != domain.StateActive {
		return
	}

	turn := domain.Turn{
		Text:        text,
		Attachments: h.attachmentsFromMessage(ctx, b, msg),
	}
	if turn.Text == "" && len(turn.Attachments) == 0 {
		return
	}

	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	reqCtx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	reply, err := h.conversations.Send(reqCtx, chatID, turn)
	if err != nil {
		h.reportRelayError(ctx, b, chatID, err, true)
		return
	}

	replyTo := msg.ID
	h.deliverReply(ctx, b, chatID, &replyTo, reply)
}
