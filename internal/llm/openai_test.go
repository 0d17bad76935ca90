package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbench-dev/ledgerbench/internal/schema"
)

func testClient(endpoint string) *OpenAIClient {
	return &OpenAIClient{
		name:       "openai",
		endpoint:   endpoint,
		apiKey:     "test-key",
		model:      "test-model",
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func chatReply(content string) string {
	reply := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	b, _ := json.Marshal(reply)
	return string(b)
}

func TestOpenAI_Generate(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		content := `Here is the account:
{"name": "Cash", "description": "Cash on hand", "currency": "USD", "normal_balance": "debit"}
Let me know if you need more.`
		io.WriteString(w, chatReply(content))
	}))
	defer srv.Close()

	raw, err := testClient(srv.URL).Generate(context.Background(), "make an account", schema.AccountSchema())
	require.NoError(t, err)

	var account struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(raw, &account))
	assert.Equal(t, "Cash", account.Name)

	// The schema travels in the prompt for chat-only backends.
	assert.Contains(t, gotBody, "matches this exact schema")
	assert.Contains(t, gotBody, "normal_balance")
}

func TestOpenAI_AuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error": {"message": "invalid api key"}}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background(), "p", schema.AccountSchema())
	require.Error(t, err)
	assert.True(t, IsAuthFailure(err))
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestOpenAI_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background(), "p", schema.AccountSchema())
	assert.True(t, IsRateLimited(err))
}

func TestOpenAI_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := testClient(srv.URL).Generate(context.Background(), "p", schema.AccountSchema())
	require.Error(t, err)
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, TransportFailure, provErr.Kind)
}

func TestOpenAI_SchemaViolation_MissingField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, chatReply(`{"name": "Cash", "description": "d", "currency": "USD"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background(), "p", schema.AccountSchema())
	require.Error(t, err)
	require.True(t, IsSchemaViolation(err))

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Problems[0], "normal_balance")
	assert.NotEmpty(t, genErr.Raw)
}

func TestOpenAI_SchemaViolation_NoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, chatReply("I cannot produce JSON today."))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background(), "p", schema.AccountSchema())
	require.True(t, IsSchemaViolation(err))
}

func TestOpenAI_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"choices": []}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background(), "p", schema.AccountSchema())
	require.True(t, IsSchemaViolation(err))
	assert.Contains(t, err.Error(), "no response content")
}

func TestNewOpenAI_MissingKey(t *testing.T) {
	t.Setenv("LEDGERBENCH_TEST_KEY", "")
	_, err := NewOpenAI(Config{Model: "m", APIKeyEnv: "LEDGERBENCH_TEST_KEY"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LEDGERBENCH_TEST_KEY")
}

func TestNewOllama_Defaults(t *testing.T) {
	client, err := NewOllama(Config{Model: "gemma3"})
	require.NoError(t, err)
	oc, ok := client.(*OpenAIClient)
	require.True(t, ok)
	assert.Equal(t, defaultOllamaEndpoint, oc.endpoint)
	assert.Equal(t, defaultOllamaKey, oc.apiKey)
}
