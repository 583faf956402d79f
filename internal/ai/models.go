package ai

// ModelInfo holds the context window and illustrative pricing of a model.
type ModelInfo struct {
	Name          string
	ContextTokens int     // approximate context window
	InputPerK     float64 // USD per 1K input tokens
	OutputPerK    float64 // USD per 1K output tokens
}

// Only models with function calling support are listed; the assistant
// depends on tool calls.
var models = map[string]ModelInfo{
	"openai/gpt-4o-mini": {
		Name:          "openai/gpt-4o-mini",
		ContextTokens: 128000,
		InputPerK:     0.0006,
		OutputPerK:    0.0024,
	},
	"openai/gpt-4o": {
		Name:          "openai/gpt-4o",
		ContextTokens: 128000,
		InputPerK:     0.005,
		OutputPerK:    0.015,
	},
	"openai/gpt-4.1-mini": {
		Name:          "openai/gpt-4.1-mini",
		ContextTokens: 128000,
		InputPerK:     0.0005,
		OutputPerK:    0.0015,
	},
	"anthropic/claude-3.5-sonnet": {
		Name:          "anthropic/claude-3.5-sonnet",
		ContextTokens: 200000,
		InputPerK:     0.003,
		OutputPerK:    0.015,
	},
	"google/gemini-1.5-flash": {
		Name:          "google/gemini-1.5-flash",
		ContextTokens: 1000000,
		InputPerK:     0.0002,
		OutputPerK:    0.0008,
	},
	"llama3.1:8b": {
		Name:          "llama3.1:8b",
		ContextTokens: 8192,
	},
}

// DefaultModel is used when no model is configured.
const DefaultModel = "openai/gpt-4o-mini"

// LookupModel returns ModelInfo and ok flag.
func LookupModel(name string) (ModelInfo, bool) {
	mi, ok := models[name]
	return mi, ok
}

// ContextBudget is the number of tokens the data context may use for a
// model: a quarter of its window, or 8000 for unknown models.
func ContextBudget(model string) int {
	if mi, ok := LookupModel(model); ok && mi.ContextTokens > 0 {
		return mi.ContextTokens / 4
	}
	return 8000
}

// EstimateCostUSD estimates total cost in USD for given tokens using model pricing.
// If the model is unknown, returns 0 and ok=false.
func EstimateCostUSD(model string, promptTokens, completionTokens int) (float64, bool) {
	mi, ok := LookupModel(model)
	if !ok {
		return 0, false
	}
	inCost := (float64(promptTokens) / 1000.0) * mi.InputPerK
	outCost := (float64(completionTokens) / 1000.0) * mi.OutputPerK
	return inCost + outCost, true
}
