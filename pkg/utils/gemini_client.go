package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	defaultGeminiTextModel  = "gemini-3-flash-preview"
	defaultGeminiImageModel = "gemini-2.5-flash-image"
)

// GeminiClient implements GenerativeClientInterface using Google's Gemini models
type GeminiClient struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

func NewGeminiClient(ctx context.Context, apiKey, textModel, imageModel string) (*GeminiClient, error) {
	if textModel == "" {
		textModel = defaultGeminiTextModel
	}
	if imageModel == "" {
		imageModel = defaultGeminiImageModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:     client,
		textModel:  textModel,
		imageModel: imageModel,
	}, nil
}

func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, schema *ResponseSchema) (string, error) {
	m := c.client.GenerativeModel(c.textModel)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.7)
	if schema != nil {
		m.ResponseSchema = toGenaiSchema(schema)
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoContentGenerated
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}

	content := ExtractJSON(sb.String())
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("gemini: not valid json")
	}
	return content, nil
}

func (c *GeminiClient) GenerateImage(ctx context.Context, prompt string) (*GeneratedImage, error) {
	m := c.client.GenerativeModel(c.imageModel)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini image: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrNoContentGenerated
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
			return &GeneratedImage{MIMEType: blob.MIMEType, Data: blob.Data}, nil
		}
	}
	return nil, ErrNoContentGenerated
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func toGenaiSchema(s *ResponseSchema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Description: s.Description,
		Required:    s.Required,
	}
	switch s.Type {
	case SchemaObject:
		out.Type = genai.TypeObject
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = toGenaiSchema(v)
		}
	case SchemaArray:
		out.Type = genai.TypeArray
		out.Items = toGenaiSchema(s.Items)
	default:
		out.Type = genai.TypeString
	}
	return out
}
