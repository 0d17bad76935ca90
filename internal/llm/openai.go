package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ledgerbench-dev/ledgerbench/internal/schema"
)

const (
	defaultOpenAIEndpoint = "https://api.openai.com/v1"
	defaultOpenAIKeyEnv   = "OPENAI_API_KEY"
	defaultOpenAITimeout  = 60 * time.Second
)

// OpenAIClient talks to any OpenAI-compatible chat-completions API. The
// backend offers no structured-output guarantee, so the schema is embedded
// in the prompt and the reply is extracted and checked here.
type OpenAIClient struct {
	name        string
	endpoint    string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewOpenAI creates a client for an OpenAI-compatible backend.
func NewOpenAI(cfg Config) (Client, error) {
	keyEnv := cfg.APIKeyEnv
	if keyEnv == "" {
		keyEnv = defaultOpenAIKeyEnv
	}
	apiKey := os.Getenv(keyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("openai: API key not provided, set %s", keyEnv)
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultOpenAIEndpoint
	}

	return &OpenAIClient{
		name:        "openai",
		endpoint:    strings.TrimRight(endpoint, "/"),
		apiKey:      apiKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: defaultOpenAITimeout},
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate implements Client.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string, target *schema.Schema) (json.RawMessage, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: promptWithSchema(prompt, target)}},
		Temperature: c.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{
			Provider: c.name,
			Kind:     TransportFailure,
			Message:  "request failed",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{
			Provider: c.name,
			Kind:     TransportFailure,
			Message:  "reading response",
			Err:      err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, NewProviderError(c.name, resp.StatusCode, errorMessage(respBody), nil)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &GenerationError{
			Provider: c.name,
			Problems: []string{fmt.Sprintf("malformed completion response: %v", err)},
			Raw:      string(respBody),
		}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return nil, &GenerationError{
			Provider: c.name,
			Problems: []string{"no response content received from the model"},
			Raw:      string(respBody),
		}
	}

	return conform(c.name, parsed.Choices[0].Message.Content, target)
}

// errorMessage pulls the API error message out of an error response body,
// falling back to a body snippet.
func errorMessage(body []byte) string {
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
