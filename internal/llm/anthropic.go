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
	defaultAnthropicEndpoint = "https://api.anthropic.com"
	defaultAnthropicKeyEnv   = "ANTHROPIC_API_KEY"
	defaultAnthropicTimeout  = 60 * time.Second

	anthropicVersion     = "2023-06-01"
	anthropicOutputsBeta = "structured-outputs-2025-11-13"
	anthropicMaxTokens   = 4096
)

// AnthropicClient talks to the Anthropic Messages API. The target schema is
// passed with the request as a structured-output format, constraining the
// backend's decoding; the reply is still checked here before being
// returned.
type AnthropicClient struct {
	endpoint    string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewAnthropic creates a client for the Anthropic API. The credential is
// read from the environment and sent only as a request header; it is never
// logged.
func NewAnthropic(cfg Config) (Client, error) {
	keyEnv := cfg.APIKeyEnv
	if keyEnv == "" {
		keyEnv = defaultAnthropicKeyEnv
	}
	apiKey := os.Getenv(keyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: API key not provided, set %s", keyEnv)
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultAnthropicEndpoint
	}

	return &AnthropicClient{
		endpoint:    strings.TrimRight(endpoint, "/"),
		apiKey:      apiKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: defaultAnthropicTimeout},
	}, nil
}

type anthropicRequest struct {
	Model        string             `json:"model"`
	MaxTokens    int                `json:"max_tokens"`
	Temperature  float64            `json:"temperature"`
	Messages     []anthropicMessage `json:"messages"`
	OutputFormat *anthropicFormat   `json:"output_format,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicFormat struct {
	Type   string         `json:"type"`
	Schema *schema.Schema `json:"schema"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate implements Client.
func (c *AnthropicClient) Generate(ctx context.Context, prompt string, target *schema.Schema) (json.RawMessage, error) {
	body, err := json.Marshal(anthropicRequest{
		Model:        c.model,
		MaxTokens:    anthropicMaxTokens,
		Temperature:  c.temperature,
		Messages:     []anthropicMessage{{Role: "user", Content: prompt}},
		OutputFormat: &anthropicFormat{Type: "json_schema", Schema: target},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("anthropic-beta", anthropicOutputsBeta)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{
			Provider: "anthropic",
			Kind:     TransportFailure,
			Message:  "request failed",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{
			Provider: "anthropic",
			Kind:     TransportFailure,
			Message:  "reading response",
			Err:      err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, NewProviderError("anthropic", resp.StatusCode, anthropicErrorMessage(respBody), nil)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &GenerationError{
			Provider: "anthropic",
			Problems: []string{fmt.Sprintf("malformed message response: %v", err)},
			Raw:      string(respBody),
		}
	}

	// The reply may carry thinking blocks ahead of the answer; take the
	// first text block.
	text := ""
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, &GenerationError{
			Provider: "anthropic",
			Problems: []string{"no text content received from the model"},
			Raw:      string(respBody),
		}
	}

	// Native structured output is a request, not a guarantee.
	return conform("anthropic", text, target)
}

func anthropicErrorMessage(body []byte) string {
	var parsed anthropicResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
