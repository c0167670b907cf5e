package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/davrell/clauderelay/internal/anthropic"
	"github.com/davrell/clauderelay/internal/domain"
)

// CalculateCost prices a request from token usage and the model's per-1M
// token prices.
func CalculateCost(promptTokens, completionTokens int, info domain.ModelInfo) decimal.Decimal {
	promptCost := decimal.NewFromFloat(float64(promptTokens) * info.PromptPrice / 1_000_000)
	completionCost := decimal.NewFromFloat(float64(completionTokens) * info.CompletionPrice / 1_000_000)
	return promptCost.Add(completionCost)
}

// FormatUsage renders the usage line appended to replies when the
// conversation was started with usage=on.
func FormatUsage(usage anthropic.Usage, model domain.Model) string {
	line := fmt.Sprintf("📊 Tokens: %d→%d", usage.InputTokens, usage.OutputTokens)
	if info, ok := domain.LookupModel(string(model)); ok {
		cost := CalculateCost(usage.InputTokens, usage.OutputTokens, info)
		line += fmt.Sprintf(" · Cost: $%s", cost.StringFixed(6))
	}
	return line
}
