package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/davrell/clauderelay/internal/anthropic"
	"github.com/davrell/clauderelay/internal/config"
	"github.com/davrell/clauderelay/internal/domain"
	"github.com/davrell/clauderelay/internal/service"
	tg "github.com/davrell/clauderelay/internal/telegram"
)

// controlsKeyboard is the inline keyboard attached to every assistant
// reply.
func controlsKeyboard(paused bool) *models.InlineKeyboardMarkup {
	pauseBtn := tg.InlineButton("⏸ Pause", cbPause)
	if paused {
		pauseBtn = tg.InlineButton("▶️ Resume", cbResume)
	}
	return tg.InlineKeyboard(tg.ButtonRow(
		tg.InlineButton("🔄 Regenerate", cbRegenerate),
		pauseBtn,
		tg.InlineButton("⏹ End", cbEnd),
	))
}

// deliverReply sends an assistant reply into the chat with the control
// keyboard, appending the usage line when enabled.
func (h *Handler) deliverReply(ctx context.Context, b *bot.Bot, chatID int64, replyToID *int, reply *service.Reply) {
	if reply.Discarded {
		return
	}
	text := tg.Truncate(reply.Text, config.MaxResponseLen)
	if reply.ShowUsage {
		text += "\n\n" + service.FormatUsage(reply.Usage, reply.Model)
	}
	if err := tg.SendLongMessage(ctx, b, chatID, text, replyToID, controlsKeyboard(false)); err != nil {
		slog.Error("send reply", "error", err, "chat_id", chatID)
	}
}

// reportRelayError converts a relay failure into a user-visible notice.
// Paused conversations and chats without a conversation stay silent for
// plain messages; the caller decides by passing silent.
func (h *Handler) reportRelayError(ctx context.Context, b *bot.Bot, chatID int64, err error, silent bool) {
	var text string
	switch {
	case errors.Is(err, domain.ErrNoActiveConversation), errors.Is(err, domain.ErrConversationPaused):
		if silent {
			return
		}
		text = "ℹ️ No active conversation here. Start one with /converse."
		if errors.Is(err, domain.ErrConversationPaused) {
			text = "⏸ The conversation is paused. Resume it to continue."
		}
	case errors.Is(err, domain.ErrNothingToRegenerate):
		text = "ℹ️ There is no reply to regenerate yet."
	case errors.Is(err, domain.ErrAlreadyActive):
		text = "❌ There is already an active conversation in this chat. End it with /end before starting a new one."
	case errors.Is(err, domain.ErrEmptyPrompt):
		text = "ℹ️ Usage: /converse [model=...] [system=\"...\"] [temperature=...] <prompt>"
	case errors.Is(err, domain.ErrInvalidParameters):
		text = fmt.Sprintf("❌ %s", err)
	default:
		// Upstream failure: relay the API's own message.
		text = "❌ " + anthropic.UserMessage(err)
		if h.notifier != nil && operatorNotice(err) {
			h.notifier.NotifyError(fmt.Sprintf("upstream error in chat %d: %v", chatID, err))
		}
	}

	slog.Warn("relay error", "error", err, "chat_id", chatID)
	if len([]rune(text)) > config.MaxTelegramMessageLen {
		text = string([]rune(text)[:config.MaxTelegramMessageLen-20]) + "\n\n... (truncated)"
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
}

// operatorNotice reports whether an upstream failure should be mirrored
// to the admin chat. Rejections of the user's own request and rate-limit
// bursts only get the in-chat notice; server errors, auth failures and
// network problems need the operator.
func operatorNotice(err error) bool {
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) && (apiErr.IsInvalidRequest() || apiErr.IsRateLimit()) {
		return false
	}
	return true
}

// attachmentsFromMessage downloads the photo or document carried by a
// message and converts it into conversation attachments. Unsupported
// media types are skipped with a log line.
func (h *Handler) attachmentsFromMessage(ctx context.Context, b *bot.Bot, msg *models.Message) []domain.Attachment {
	var attachments []domain.Attachment

	if len(msg.Photo) > 0 {
		// Highest resolution variant is last.
		photo := msg.Photo[len(msg.Photo)-1]
		data, _, err := tg.DownloadFile(ctx, b, photo.FileID)
		if err != nil {
			slog.Warn("download photo", "error", err, "chat_id", msg.Chat.ID)
		} else {
			attachments = append(attachments, domain.Attachment{
				MediaType: "image/jpeg", // Telegram photos are re-encoded as JPEG
				Data:      data,
			})
		}
	}

	if msg.Document != nil {
		if !service.SupportedAttachment(msg.Document.MimeType) {
			slog.Info("skipping unsupported attachment",
				"media_type", msg.Document.MimeType,
				"chat_id", msg.Chat.ID,
			)
			return attachments
		}
		data, _, err := tg.DownloadFile(ctx, b, msg.Document.FileID)
		if err != nil {
			slog.Warn("download document", "error", err, "chat_id", msg.Chat.ID)
		} else {
			attachments = append(attachments, domain.Attachment{
				MediaType: msg.Document.MimeType,
				Filename:  msg.Document.FileName,
				Data:      data,
			})
		}
	}

	return attachments
}
