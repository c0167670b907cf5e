package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davrell/clauderelay/internal/anthropic"
	"github.com/davrell/clauderelay/internal/domain"
)

func TestCalculateCost(t *testing.T) {
	info, ok := domain.LookupModel(string(domain.ModelSonnet4))
	require.True(t, ok)

	// 1M prompt tokens at $3 + 1M completion tokens at $15.
	cost := CalculateCost(1_000_000, 1_000_000, info)
	assert.Equal(t, "18", cost.String())

	cost = CalculateCost(1000, 500, info)
	assert.Equal(t, "0.0105", cost.String())

	assert.True(t, CalculateCost(0, 0, info).IsZero())
}

func TestFormatUsage(t *testing.T) {
	line := FormatUsage(anthropic.Usage{InputTokens: 1000, OutputTokens: 500}, domain.ModelSonnet4)
	assert.Contains(t, line, "1000→500")
	assert.Contains(t, line, "$0.010500")
}
