package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/davrell/clauderelay/internal/config"
	"github.com/davrell/clauderelay/internal/domain"
)

// ConverseOptions are the typed options accepted by /converse in
// key=value form before the prompt, e.g.
//
//	/converse model=claude-sonnet-4-20250514 temperature=0.7 system="Be brief" Hello!
type ConverseOptions struct {
	Model       string
	System      string
	MaxTokens   int
	Temperature *float64
	TopP        *float64
	TopK        *int
	ShowUsage   bool
}

// Params assembles sampling parameters from the parsed options, applying
// the given default model when none was set.
func (o ConverseOptions) Params(defaultModel domain.Model) domain.SamplingParameters {
	model := defaultModel
	if o.Model != "" {
		model = domain.Model(o.Model)
	}
	maxTokens := o.MaxTokens
	if maxTokens == 0 {
		maxTokens = config.DefaultMaxTokens
	}
	return domain.SamplingParameters{
		Model:       model,
		System:      o.System,
		MaxTokens:   maxTokens,
		Temperature: o.Temperature,
		TopP:        o.TopP,
		TopK:        o.TopK,
	}
}

// ParseConverseArgs splits the argument string of /converse into options
// and the prompt. Option values may be double-quoted to contain spaces.
// Parsing stops at the first token that is not a known key=value pair;
// the rest is the prompt. Syntax and number errors wrap
// ErrInvalidParameters.
func ParseConverseArgs(args string) (ConverseOptions, string, error) {
	var opts ConverseOptions
	rest := strings.TrimSpace(args)

	for rest != "" {
		key, after, ok := splitOption(rest)
		if !ok {
			break
		}
		value, remainder, err := readValue(after)
		if err != nil {
			return opts, "", fmt.Errorf("%w: %s=%v", domain.ErrInvalidParameters, key, err)
		}
		if err := opts.set(key, value); err != nil {
			return opts, "", err
		}
		rest = strings.TrimSpace(remainder)
	}

	return opts, rest, nil
}

// splitOption checks whether rest starts with a known option key followed
// by '='. It returns the key and the text after the '='.
func splitOption(rest string) (key, after string, ok bool) {
	eq := strings.IndexByte(rest, '=')
	if eq <= 0 {
		return "", "", false
	}
	key = rest[:eq]
	switch key {
	case "model", "system", "max_tokens", "temperature", "top_p", "top_k", "usage":
		return key, rest[eq+1:], true
	}
	return "", "", false
}

// readValue reads one option value: either a double-quoted string or a
// bare token up to the next space.
func readValue(s string) (value, remainder string, err error) {
	if strings.HasPrefix(s, `"`) {
		end := strings.IndexByte(s[1:], '"')
		if end < 0 {
			return "", "", fmt.Errorf("unterminated quote")
		}
		return s[1 : end+1], s[end+2:], nil
	}
	if space := strings.IndexByte(s, ' '); space >= 0 {
		return s[:space], s[space+1:], nil
	}
	return s, "", nil
}

func (o *ConverseOptions) set(key, value string) error {
	switch key {
	case "model":
		o.Model = value
	case "system":
		o.System = value
	case "max_tokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: max_tokens=%q is not an integer", domain.ErrInvalidParameters, value)
		}
		o.MaxTokens = n
	case "temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: temperature=%q is not a number", domain.ErrInvalidParameters, value)
		}
		o.Temperature = &f
	case "top_p":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: top_p=%q is not a number", domain.ErrInvalidParameters, value)
		}
		o.TopP = &f
	case "top_k":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: top_k=%q is not an integer", domain.ErrInvalidParameters, value)
		}
		o.TopK = &n
	case "usage":
		switch value {
		case "on", "true", "1":
			o.ShowUsage = true
		case "off", "false", "0":
			o.ShowUsage = false
		default:
			return fmt.Errorf("%w: usage=%q, want on or off", domain.ErrInvalidParameters, value)
		}
	}
	return nil
}
