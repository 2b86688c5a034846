package utils

import (
	"context"
	"encoding/json"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

const (
	defaultAnthropicModel     = "claude-sonnet-4-5"
	defaultAnthropicMaxTokens = 4096
)

// AnthropicClient only produces text; GenerateImage always reports
// ErrImageUnsupported.
type AnthropicClient struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

func NewAnthropicClient(apiKey, model string, maxTokens int64) *AnthropicClient {
	if model == "" {
		model = defaultAnthropicModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	return &AnthropicClient{
		client:    sdk.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (c *AnthropicClient) GenerateJSON(ctx context.Context, prompt string, schema *ResponseSchema) (string, error) {
	if shape := DescribeSchema(schema); shape != "" {
		prompt += "\n\nResponda somente com JSON neste formato:\n" + shape
	}

	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "anthropic: create message")
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", ErrNoContentGenerated
	}

	content := ExtractJSON(sb.String())
	if !json.Valid([]byte(content)) {
		return "", eris.New("anthropic: not valid json")
	}
	return content, nil
}

func (c *AnthropicClient) GenerateImage(context.Context, string) (*GeneratedImage, error) {
	return nil, ErrImageUnsupported
}

func (c *AnthropicClient) Close() error { return nil }
