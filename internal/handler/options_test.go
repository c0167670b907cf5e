package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davrell/clauderelay/internal/config"
	"github.com/davrell/clauderelay/internal/domain"
)

func TestParseConverseArgsPromptOnly(t *testing.T) {
	opts, prompt, err := ParseConverseArgs("Hello there, Claude!")
	require.NoError(t, err)
	assert.Equal(t, "Hello there, Claude!", prompt)
	assert.Empty(t, opts.Model)
	assert.Nil(t, opts.Temperature)
}

func TestParseConverseArgsWithOptions(t *testing.T) {
	opts, prompt, err := ParseConverseArgs(
		`model=claude-sonnet-4-20250514 temperature=0.7 top_k=40 max_tokens=2048 usage=on Explain goroutines`)
	require.NoError(t, err)

	assert.Equal(t, "claude-sonnet-4-20250514", opts.Model)
	require.NotNil(t, opts.Temperature)
	assert.Equal(t, 0.7, *opts.Temperature)
	require.NotNil(t, opts.TopK)
	assert.Equal(t, 40, *opts.TopK)
	assert.Equal(t, 2048, opts.MaxTokens)
	assert.True(t, opts.ShowUsage)
	assert.Equal(t, "Explain goroutines", prompt)
}

func TestParseConverseArgsQuotedSystem(t *testing.T) {
	opts, prompt, err := ParseConverseArgs(`system="You are a pirate. Answer briefly." Ahoy!`)
	require.NoError(t, err)
	assert.Equal(t, "You are a pirate. Answer briefly.", opts.System)
	assert.Equal(t, "Ahoy!", prompt)
}

func TestParseConverseArgsUnterminatedQuote(t *testing.T) {
	_, _, err := ParseConverseArgs(`system="unterminated prompt`)
	assert.ErrorIs(t, err, domain.ErrInvalidParameters)
}

func TestParseConverseArgsBadNumber(t *testing.T) {
	_, _, err := ParseConverseArgs("temperature=hot Hello")
	assert.ErrorIs(t, err, domain.ErrInvalidParameters)

	_, _, err = ParseConverseArgs("top_k=4.5 Hello")
	assert.ErrorIs(t, err, domain.ErrInvalidParameters)

	_, _, err = ParseConverseArgs("usage=maybe Hello")
	assert.ErrorIs(t, err, domain.ErrInvalidParameters)
}

func TestParseConverseArgsEqualsInPrompt(t *testing.T) {
	// An unknown key=value token is part of the prompt, not an option.
	_, prompt, err := ParseConverseArgs("what does x=y mean?")
	require.NoError(t, err)
	assert.Equal(t, "what does x=y mean?", prompt)
}

func TestConverseOptionsParams(t *testing.T) {
	opts := ConverseOptions{}
	params := opts.Params(domain.DefaultModel)
	assert.Equal(t, domain.DefaultModel, params.Model)
	assert.Equal(t, config.DefaultMaxTokens, params.MaxTokens)
	assert.NoError(t, params.Validate())

	opts = ConverseOptions{Model: "claude-3-haiku-20240307", MaxTokens: 512}
	params = opts.Params(domain.DefaultModel)
	assert.Equal(t, domain.Model3Haiku, params.Model)
	assert.Equal(t, 512, params.MaxTokens)
}
