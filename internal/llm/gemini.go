package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	genai "google.golang.org/genai"

	"github.com/ledgerbench-dev/ledgerbench/internal/schema"
)

const defaultGeminiKeyEnv = "GEMINI_API_KEY"

// GeminiClient uses the Gemini API's native structured output: the target
// schema is passed with the request and the backend constrains decoding to
// it. The response is still checked here before being returned.
type GeminiClient struct {
	cli         *genai.Client
	model       string
	temperature float64
}

// NewGemini creates a client for the Gemini API. The credential is read
// from the environment and handed to the SDK; it is never logged.
func NewGemini(cfg Config) (Client, error) {
	keyEnv := cfg.APIKeyEnv
	if keyEnv == "" {
		keyEnv = defaultGeminiKeyEnv
	}
	apiKey := os.Getenv(keyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key not provided, set %s", keyEnv)
	}

	cli, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiClient{cli: cli, model: cfg.Model, temperature: cfg.Temperature}, nil
}

// Generate implements Client.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, target *schema.Schema) (json.RawMessage, error) {
	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			ResponseMIMEType:   "application/json",
			ResponseJsonSchema: target,
			Temperature:        genai.Ptr(float32(c.temperature)),
		},
	)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, NewProviderError("gemini", apiErr.Code, apiErr.Message, err)
		}
		return nil, &ProviderError{
			Provider: "gemini",
			Kind:     TransportFailure,
			Message:  "request failed",
			Err:      err,
		}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &GenerationError{
			Provider: "gemini",
			Problems: []string{"no response received from the model"},
		}
	}
	text := resp.Candidates[0].Content.Parts[0].Text

	// Native structured output is a request, not a guarantee.
	return conform("gemini", text, target)
}
