package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func validParams() SamplingParameters {
	return SamplingParameters{Model: DefaultModel, MaxTokens: 16384}
}

func TestSamplingParametersValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SamplingParameters)
		wantErr bool
	}{
		{"defaults", func(p *SamplingParameters) {}, false},
		{"unknown model", func(p *SamplingParameters) { p.Model = "claude-x" }, true},
		{"zero max_tokens", func(p *SamplingParameters) { p.MaxTokens = 0 }, true},
		{"negative max_tokens", func(p *SamplingParameters) { p.MaxTokens = -1 }, true},
		{"temperature too high", func(p *SamplingParameters) { p.Temperature = floatPtr(1.5) }, true},
		{"temperature negative", func(p *SamplingParameters) { p.Temperature = floatPtr(-0.1) }, true},
		{"temperature boundary", func(p *SamplingParameters) { p.Temperature = floatPtr(1.0) }, false},
		{"top_p out of range", func(p *SamplingParameters) { p.TopP = floatPtr(1.2) }, true},
		{"top_p boundary", func(p *SamplingParameters) { p.TopP = floatPtr(0) }, false},
		{"top_k zero", func(p *SamplingParameters) { p.TopK = intPtr(0) }, true},
		{"top_k positive", func(p *SamplingParameters) { p.TopK = intPtr(40) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidParameters)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConversationAlternation(t *testing.T) {
	conv := NewConversation(1, validParams())

	conv.AppendUser(Turn{Text: "Hello"})
	require.Len(t, conv.Turns, 1)
	assert.Equal(t, RoleUser, conv.Turns[0].Role)

	require.NoError(t, conv.AppendAssistant("Hi there"))
	require.Len(t, conv.Turns, 2)
	assert.Equal(t, RoleAssistant, conv.Turns[1].Role)

	// Appending an assistant turn after an assistant turn is an
	// integrator bug and must be rejected.
	assert.Error(t, conv.AppendAssistant("again"))
	assert.Len(t, conv.Turns, 2)
}

func TestAppendUserCoalescesPendingTurn(t *testing.T) {
	conv := NewConversation(1, validParams())

	conv.AppendUser(Turn{Text: "first try"})
	// The upstream call failed; the user sends another message.
	conv.AppendUser(Turn{Text: "second try", Attachments: []Attachment{{MediaType: "image/png", Data: []byte{1}}}})

	require.Len(t, conv.Turns, 1)
	assert.Equal(t, "first try\nsecond try", conv.Turns[0].Text)
	assert.Len(t, conv.Turns[0].Attachments, 1)
}

func TestDropLastAssistant(t *testing.T) {
	conv := NewConversation(1, validParams())
	conv.AppendUser(Turn{Text: "A"})

	// No assistant turn yet.
	assert.ErrorIs(t, conv.DropLastAssistant(), ErrNothingToRegenerate)
	assert.Len(t, conv.Turns, 1)

	require.NoError(t, conv.AppendAssistant("B"))
	require.NoError(t, conv.DropLastAssistant())
	require.Len(t, conv.Turns, 1)
	assert.Equal(t, "A", conv.Turns[0].Text)
}

func TestStateTransitions(t *testing.T) {
	conv := NewConversation(1, validParams())
	assert.Equal(t, StateActive, conv.State)

	require.NoError(t, conv.Pause())
	assert.Equal(t, StatePaused, conv.State)
	assert.ErrorIs(t, conv.Pause(), ErrConversationPaused)

	require.NoError(t, conv.Resume())
	assert.Equal(t, StateActive, conv.State)
	// Resuming an active conversation is harmless.
	require.NoError(t, conv.Resume())

	conv.End()
	assert.Equal(t, StateEnded, conv.State)
	assert.ErrorIs(t, conv.Pause(), ErrConversationEnded)
	assert.ErrorIs(t, conv.Resume(), ErrConversationEnded)
}
