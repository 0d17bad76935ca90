// Package llm defines the structured-generation contract and the provider
// adapters that implement it against real LLM backends.
package llm

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/ledgerbench-dev/ledgerbench/internal/schema"
)

// Client is the capability every backend adapter implements: turn a prompt
// into a JSON value conforming to the target schema, or fail. The returned
// raw message is guaranteed conformant; callers may unmarshal it directly.
// A call blocks until the backend answers; no retries happen here.
type Client interface {
	Generate(ctx context.Context, prompt string, target *schema.Schema) (json.RawMessage, error)
}

// Config is the uniform adapter configuration. Each backend maps these
// onto its own parameter names.
type Config struct {
	// Model is the backend-specific model identifier.
	Model string
	// Temperature controls generation randomness. Benchmarks want 0.
	Temperature float64
	// Endpoint overrides the backend base URL, where applicable.
	Endpoint string
	// Region selects the backend location, where applicable.
	Region string
	// APIKeyEnv names the environment variable holding the credential.
	// Empty means the provider's conventional variable.
	APIKeyEnv string
}

// Factory builds a Client from a Config.
type Factory func(cfg Config) (Client, error)

// Registry maps provider names to factories. It is an explicit value built
// at startup and passed around, not package-level mutable state.
type Registry map[string]Factory

// DefaultRegistry returns the built-in providers.
func DefaultRegistry() Registry {
	return Registry{
		"anthropic": NewAnthropic,
		"gemini":    NewGemini,
		"openai":    NewOpenAI,
		"ollama":    NewOllama,
		"bedrock":   NewBedrock,
	}
}

// New builds a client for the named provider.
func (r Registry) New(provider string, cfg Config) (Client, error) {
	factory, ok := r[provider]
	if !ok {
		return nil, &UnknownProviderError{Provider: provider}
	}
	return factory(cfg)
}

// Providers returns the registered provider names, sorted.
func (r Registry) Providers() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
