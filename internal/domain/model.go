package domain

// Model identifies one of the supported Claude models. The set is closed:
// anything outside the catalog is rejected before a request is built.
type Model string

const (
	ModelOpus45   Model = "claude-opus-4-5-20251101"
	ModelSonnet45 Model = "claude-sonnet-4-5-20250514"
	ModelSonnet4  Model = "claude-sonnet-4-20250514"
	ModelHaiku35  Model = "claude-haiku-3-5-20241022"
	Model35Sonnet Model = "claude-3-5-sonnet-20241022"
	Model35Haiku  Model = "claude-3-5-haiku-20241022"
	Model3Opus    Model = "claude-3-opus-20240229"
	Model3Sonnet  Model = "claude-3-sonnet-20240229"
	Model3Haiku   Model = "claude-3-haiku-20240307"
)

// DefaultModel is used when /converse is invoked without model=.
const DefaultModel = ModelOpus45

type ModelCapabilities struct {
	Vision bool
	PDF    bool
}

// ModelInfo describes one catalog entry. Prices are USD per 1M tokens.
type ModelInfo struct {
	ID              Model
	Name            string
	PromptPrice     float64
	CompletionPrice float64
	Capabilities    ModelCapabilities
}

// modelCatalog is ordered newest first; the order is what /models shows.
var modelCatalog = []ModelInfo{
	{ModelOpus45, "Claude Opus 4.5", 5, 25, ModelCapabilities{Vision: true, PDF: true}},
	{ModelSonnet45, "Claude Sonnet 4.5", 3, 15, ModelCapabilities{Vision: true, PDF: true}},
	{ModelSonnet4, "Claude Sonnet 4", 3, 15, ModelCapabilities{Vision: true, PDF: true}},
	{ModelHaiku35, "Claude Haiku 3.5", 0.8, 4, ModelCapabilities{Vision: true, PDF: false}},
	{Model35Sonnet, "Claude 3.5 Sonnet", 3, 15, ModelCapabilities{Vision: true, PDF: true}},
	{Model35Haiku, "Claude 3.5 Haiku", 0.8, 4, ModelCapabilities{Vision: false, PDF: false}},
	{Model3Opus, "Claude 3 Opus", 15, 75, ModelCapabilities{Vision: true, PDF: false}},
	{Model3Sonnet, "Claude 3 Sonnet", 3, 15, ModelCapabilities{Vision: true, PDF: false}},
	{Model3Haiku, "Claude 3 Haiku", 0.25, 1.25, ModelCapabilities{Vision: true, PDF: false}},
}

var modelIndex = func() map[Model]ModelInfo {
	m := make(map[Model]ModelInfo, len(modelCatalog))
	for _, info := range modelCatalog {
		m[info.ID] = info
	}
	return m
}()

// LookupModel returns the catalog entry for id, or ok=false for anything
// outside the supported set.
func LookupModel(id string) (ModelInfo, bool) {
	info, ok := modelIndex[Model(id)]
	return info, ok
}

// Models returns the catalog in display order.
func Models() []ModelInfo {
	out := make([]ModelInfo, len(modelCatalog))
	copy(out, modelCatalog)
	return out
}

func (m Model) Valid() bool {
	_, ok := modelIndex[m]
	return ok
}
