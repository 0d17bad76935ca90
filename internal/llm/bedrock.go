package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/ledgerbench-dev/ledgerbench/internal/schema"
)

const (
	defaultBedrockRegion    = "us-west-2"
	defaultBedrockMaxTokens = 4096
)

// BedrockClient uses the Amazon Bedrock Converse API: one call shape
// regardless of the underlying foundation model. Conformance is not
// guaranteed by the transport, so the schema rides in the prompt and the
// reply is extracted and checked here. Credentials (including
// AWS_BEARER_TOKEN_BEDROCK) are resolved by the SDK's default chain.
type BedrockClient struct {
	cli         *bedrockruntime.Client
	model       string
	temperature float64
}

// NewBedrock creates a client for Amazon Bedrock in the configured region.
func NewBedrock(cfg Config) (Client, error) {
	region := cfg.Region
	if region == "" {
		region = defaultBedrockRegion
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &BedrockClient{
		cli:         bedrockruntime.NewFromConfig(awsCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

// Generate implements Client.
func (c *BedrockClient) Generate(ctx context.Context, prompt string, target *schema.Schema) (json.RawMessage, error) {
	out, err := c.cli.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.model),
		Messages: []brtypes.Message{{
			Role: brtypes.ConversationRoleUser,
			Content: []brtypes.ContentBlock{
				&brtypes.ContentBlockMemberText{Value: promptWithSchema(prompt, target)},
			},
		}},
		InferenceConfig: &brtypes.InferenceConfiguration{
			Temperature: aws.Float32(float32(c.temperature)),
			MaxTokens:   aws.Int32(defaultBedrockMaxTokens),
		},
	})
	if err != nil {
		return nil, bedrockError(err)
	}

	msg, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return nil, &GenerationError{
			Provider: "bedrock",
			Problems: []string{"response contained no message output"},
		}
	}

	// Reasoning models emit thinking blocks before the answer; take the
	// first plain text block.
	var reply string
	for _, block := range msg.Value.Content {
		if text, ok := block.(*brtypes.ContentBlockMemberText); ok {
			reply = text.Value
			break
		}
	}
	if reply == "" {
		return nil, &GenerationError{
			Provider: "bedrock",
			Problems: []string{fmt.Sprintf("no text output in %d content blocks", len(msg.Value.Content))},
		}
	}

	return conform("bedrock", reply, target)
}

func bedrockError(err error) error {
	var throttled *brtypes.ThrottlingException
	if errors.As(err, &throttled) {
		return &ProviderError{Provider: "bedrock", Kind: RateLimited, Message: aws.ToString(throttled.Message), Err: err}
	}
	var denied *brtypes.AccessDeniedException
	if errors.As(err, &denied) {
		return &ProviderError{Provider: "bedrock", Kind: AuthFailure, Message: aws.ToString(denied.Message), Err: err}
	}
	return &ProviderError{Provider: "bedrock", Kind: TransportFailure, Message: "converse call failed", Err: err}
}
