package llm

import (
	"net/http"
	"strings"
	"time"
)

const (
	defaultOllamaEndpoint = "http://localhost:11434/v1"
	defaultOllamaKey      = "ollama" // Ollama ignores the API key
	defaultOllamaTimeout  = 120 * time.Second
)

// NewOllama creates a client for a local Ollama server via its
// OpenAI-compatible API. Defaults suit local inference: localhost
// endpoint, placeholder key, and a long timeout.
func NewOllama(cfg Config) (Client, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultOllamaEndpoint
	}
	return &OpenAIClient{
		name:        "ollama",
		endpoint:    strings.TrimRight(endpoint, "/"),
		apiKey:      defaultOllamaKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: defaultOllamaTimeout},
	}, nil
}
