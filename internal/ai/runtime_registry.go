package ai

import "time"

// RuntimeFactory builds a Runtime from the generic config below.
type RuntimeFactory func(RuntimeConfig) Runtime

// RuntimeConfig carries common knobs used by runtimes.
type RuntimeConfig struct {
	HTTPTimeout time.Duration
	RetryMax    int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	APIKey      string
	// BaseURL overrides the provider's default endpoint.
	BaseURL string
}

var registry = map[string]RuntimeFactory{}

// RegisterRuntime registers a provider name with its factory.
func RegisterRuntime(name string, f RuntimeFactory) { registry[name] = f }

// GetRuntime creates a Runtime for the given provider if registered.
func GetRuntime(name string, cfg RuntimeConfig) (Runtime, bool) {
	if f, ok := registry[name]; ok {
		return f(cfg), true
	}
	return nil, false
}

func compatible(defaultURL string, needsKey bool) RuntimeFactory {
	return func(c RuntimeConfig) Runtime {
		base := c.BaseURL
		if base == "" {
			base = defaultURL
		}
		cl := NewClientWithBaseURL(c.APIKey, c.HTTPTimeout, c.RetryMax, c.BaseDelay, c.MaxDelay, base)
		cl.requireKey = needsKey
		return cl
	}
}

func init() {
	RegisterRuntime(ProviderOpenRouter, compatible(DefaultBaseURL, true))
	RegisterRuntime(ProviderOpenAI, compatible("https://api.openai.com/v1", true))
	// Ollama serves the same chat API under /v1 and ignores the key.
	RegisterRuntime(ProviderOllama, compatible("http://localhost:11434/v1", false))
}
