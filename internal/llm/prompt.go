package llm

import (
	"encoding/json"
	"fmt"

	"github.com/ledgerbench-dev/ledgerbench/internal/schema"
)

// promptWithSchema embeds the target schema in the prompt for backends
// without native structured-output support.
func promptWithSchema(prompt string, target *schema.Schema) string {
	schemaJSON, _ := json.MarshalIndent(target, "", "  ")
	return fmt.Sprintf(`%s

You must respond with valid JSON that matches this exact schema:
%s

Respond ONLY with valid JSON, no other text or explanations.`, prompt, schemaJSON)
}

// conform extracts a JSON value from a raw model reply and checks it
// against the target schema. Extraction and validation are two distinct
// stages; both failure modes surface as a GenerationError.
func conform(provider, reply string, target *schema.Schema) (json.RawMessage, error) {
	raw := ExtractJSON(reply)
	if raw == "" {
		return nil, &GenerationError{
			Provider: provider,
			Problems: []string{"no JSON value found in response"},
			Raw:      reply,
		}
	}
	if problems := schema.Check(target, []byte(raw)); len(problems) > 0 {
		return nil, &GenerationError{Provider: provider, Problems: problems, Raw: reply}
	}
	return json.RawMessage(raw), nil
}
