package service

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/davrell/clauderelay/internal/anthropic"
	"github.com/davrell/clauderelay/internal/domain"
)

// Attachment media types accepted by the Messages API.
var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var supportedDocumentTypes = map[string]bool{
	"application/pdf": true,
	"text/plain":      true,
	"text/markdown":   true,
	"text/csv":        true,
}

// BuildRequest turns the conversation's full turn history and sampling
// parameters into an outbound Messages request. Pure transform: it never
// mutates the conversation. Unset optional parameters stay absent from
// the payload.
func BuildRequest(conv *domain.Conversation) (*anthropic.MessagesRequest, error) {
	if err := conv.Params.Validate(); err != nil {
		return nil, err
	}

	messages := make([]anthropic.Message, 0, len(conv.Turns))
	for _, turn := range conv.Turns {
		messages = append(messages, anthropic.Message{
			Role:    string(turn.Role),
			Content: turnContent(turn),
		})
	}

	return &anthropic.MessagesRequest{
		Model:       string(conv.Params.Model),
		MaxTokens:   conv.Params.MaxTokens,
		Messages:    messages,
		System:      conv.Params.System,
		Temperature: conv.Params.Temperature,
		TopP:        conv.Params.TopP,
		TopK:        conv.Params.TopK,
	}, nil
}

func turnContent(turn domain.Turn) []anthropic.ContentBlock {
	var blocks []anthropic.ContentBlock
	text := turn.Text
	if text == "" && len(turn.Attachments) > 0 {
		text = "[File]"
	}
	if text != "" {
		blocks = append(blocks, anthropic.TextBlock(text))
	}
	for _, att := range turn.Attachments {
		if block, ok := AttachmentBlock(att); ok {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// AttachmentBlock encodes one attachment as the content block the API
// expects: images and PDFs as base64 source blocks, text files inlined as
// a text block with a filename prefix. Unsupported media types are
// skipped (ok=false).
func AttachmentBlock(att domain.Attachment) (anthropic.ContentBlock, bool) {
	switch {
	case supportedImageTypes[att.MediaType]:
		return anthropic.ImageBlock(att.MediaType, base64.StdEncoding.EncodeToString(att.Data)), true
	case att.MediaType == "application/pdf":
		return anthropic.DocumentBlock(att.MediaType, base64.StdEncoding.EncodeToString(att.Data)), true
	case supportedDocumentTypes[att.MediaType] || strings.HasPrefix(att.MediaType, "text/"):
		text := string(att.Data)
		if !utf8.ValidString(text) {
			text = strings.ToValidUTF8(text, "�")
		}
		if att.Filename != "" {
			text = fmt.Sprintf("[File: %s]\n\n%s", att.Filename, text)
		}
		return anthropic.TextBlock(text), true
	default:
		return anthropic.ContentBlock{}, false
	}
}

// SupportedAttachment reports whether the media type can be relayed.
func SupportedAttachment(mediaType string) bool {
	return supportedImageTypes[mediaType] ||
		supportedDocumentTypes[mediaType] ||
		strings.HasPrefix(mediaType, "text/")
}
