package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Anthropic error types, as returned in the error envelope.
const (
	ErrTypeInvalidRequest = "invalid_request_error"
	ErrTypeAuthentication = "authentication_error"
	ErrTypeRateLimit      = "rate_limit_error"
	ErrTypeAPI            = "api_error"
	ErrTypeOverloaded     = "overloaded_error"
)

// APIError is a non-2xx response from the Messages API.
type APIError struct {
	Status  int
	Type    string
	Message string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("anthropic: %s (HTTP %d): %s", e.Type, e.Status, e.Message)
	}
	return fmt.Sprintf("anthropic: HTTP %d: %s", e.Status, e.Message)
}

func (e *APIError) IsRateLimit() bool {
	return e.Type == ErrTypeRateLimit || e.Status == http.StatusTooManyRequests
}

func (e *APIError) IsInvalidRequest() bool {
	return e.Type == ErrTypeInvalidRequest || e.Status == http.StatusBadRequest
}

func (e *APIError) IsServerError() bool {
	return e.Type == ErrTypeAPI || e.Type == ErrTypeOverloaded || e.Status >= 500
}

func parseAPIError(status int, body []byte) *APIError {
	var envelope struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Type = envelope.Error.Type
		apiErr.Message = envelope.Error.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
	}
	return apiErr
}

// UserMessage renders a display-safe description of an upstream failure,
// suitable for relaying into the chat.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		var details []string
		if apiErr.Status != 0 {
			details = append(details, fmt.Sprintf("Status: %d", apiErr.Status))
		}
		if apiErr.Type != "" {
			details = append(details, fmt.Sprintf("Error: %s", apiErr.Type))
		}
		if len(details) > 0 {
			msg = msg + "\n\n" + strings.Join(details, "\n")
		}
		if apiErr.IsServerError() {
			msg += "\n\nThis is usually temporary. Please try again."
		}
		return msg
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The request to Claude timed out. Please try again."
	}
	return err.Error()
}
