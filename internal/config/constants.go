package config

import "time"

const (
	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Upstream request timeout
	RequestTimeout = 90 * time.Second

	// Default max output tokens per response
	DefaultMaxTokens = 16384

	// Responses longer than this are truncated before sending.
	MaxResponseLen = 20000
)
