package utils

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIClient struct {
	client     *openai.Client
	textModel  string
	imageModel string
}

func NewOpenAIClient(apiKey, textModel, imageModel string) *OpenAIClient {
	if textModel == "" {
		textModel = openai.GPT4oMini
	}
	if imageModel == "" {
		imageModel = openai.CreateImageModelDallE3
	}
	return &OpenAIClient{
		client:     openai.NewClient(apiKey),
		textModel:  textModel,
		imageModel: imageModel,
	}
}

func (c *OpenAIClient) GenerateJSON(ctx context.Context, prompt string, schema *ResponseSchema) (string, error) {
	if shape := DescribeSchema(schema); shape != "" {
		prompt += "\n\nResponda somente com JSON neste formato:\n" + shape
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.textModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You answer with a single JSON object and nothing else."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoContentGenerated
	}

	content := ExtractJSON(resp.Choices[0].Message.Content)
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("openai: not valid json")
	}
	return content, nil
}

func (c *OpenAIClient) GenerateImage(ctx context.Context, prompt string) (*GeneratedImage, error) {
	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.imageModel,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("openai image: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, ErrNoContentGenerated
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("openai image: decode: %w", err)
	}
	return &GeneratedImage{MIMEType: "image/png", Data: data}, nil
}

func (c *OpenAIClient) Close() error { return nil }
