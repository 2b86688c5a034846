package utils

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// GenerativeClientInterface is what the enrichment service needs from a
// model provider.
type GenerativeClientInterface interface {
	// GenerateJSON returns a JSON document, already stripped of markdown.
	GenerateJSON(ctx context.Context, prompt string, schema *ResponseSchema) (string, error)
	GenerateImage(ctx context.Context, prompt string) (*GeneratedImage, error)
	Close() error
}

type SchemaType string

const (
	SchemaObject SchemaType = "object"
	SchemaArray  SchemaType = "array"
	SchemaString SchemaType = "string"
)

// ResponseSchema is a provider neutral description of the JSON we expect.
type ResponseSchema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*ResponseSchema
	// Order keeps the property order stable in prompts.
	Order    []string
	Items    *ResponseSchema
	Required []string
}

type GeneratedImage struct {
	MIMEType string
	Data     []byte
}

func (g *GeneratedImage) DataURL() string {
	mime := g.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(g.Data)
}

type GenerativeConfig struct {
	Provider   string
	APIKey     string
	TextModel  string
	ImageModel string
	MaxTokens  int64
}

// NewGenerativeClient picks the provider implementation. An empty API key
// yields a client that always fails, so callers fall back to canned content.
func NewGenerativeClient(ctx context.Context, cfg GenerativeConfig) (GenerativeClientInterface, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return disabledClient{}, nil
	}
	switch strings.ToLower(cfg.Provider) {
	case "gemini", "":
		client, err := NewGeminiClient(ctx, cfg.APIKey, cfg.TextModel, cfg.ImageModel)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.TextModel, cfg.ImageModel), nil
	case "anthropic":
		return NewAnthropicClient(cfg.APIKey, cfg.TextModel, cfg.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

type disabledClient struct{}

func (disabledClient) GenerateJSON(context.Context, string, *ResponseSchema) (string, error) {
	return "", ErrProviderDisabled
}

func (disabledClient) GenerateImage(context.Context, string) (*GeneratedImage, error) {
	return nil, ErrProviderDisabled
}

func (disabledClient) Close() error { return nil }

// DescribeSchema renders a JSON skeleton of schema for providers that only
// take the shape through the prompt.
func DescribeSchema(schema *ResponseSchema) string {
	if schema == nil {
		return ""
	}
	b, err := json.MarshalIndent(skeleton(schema), "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}

type orderedObject struct {
	keys   []string
	values map[string]any
}

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, _ := json.Marshal(k)
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		b.Write(vb)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

func skeleton(s *ResponseSchema) any {
	switch s.Type {
	case SchemaObject:
		obj := orderedObject{values: make(map[string]any, len(s.Properties))}
		obj.keys = append(obj.keys, s.Order...)
		for k := range s.Properties {
			if !slices.Contains(obj.keys, k) {
				obj.keys = append(obj.keys, k)
			}
		}
		for _, k := range obj.keys {
			if p, ok := s.Properties[k]; ok {
				obj.values[k] = skeleton(p)
			}
		}
		return obj
	case SchemaArray:
		if s.Items == nil {
			return []any{}
		}
		return []any{skeleton(s.Items)}
	default:
		if s.Description != "" {
			return s.Description
		}
		return "string"
	}
}

// ExtractJSON removes markdown fences and surrounding prose from a model
// answer and returns the first complete JSON object or array in it.
func ExtractJSON(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")

	if objStart != -1 && (arrStart == -1 || objStart < arrStart) {
		if end := findClosing(response, objStart, '{', '}'); end != -1 {
			response = response[objStart : end+1]
		}
	} else if arrStart != -1 {
		if end := findClosing(response, arrStart, '[', ']'); end != -1 {
			response = response[arrStart : end+1]
		}
	}

	return strings.TrimSpace(response)
}

// findClosing returns the index of the delimiter closing the one at start,
// skipping over string literals, or -1.
func findClosing(s string, start int, openCh, closeCh byte) int {
	if start >= len(s) || s[start] != openCh {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
