package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"
)

type GeminiModel struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiModel talks to the Gemini API. An empty baseURL uses Google's endpoint.
func NewGeminiModel(ctx context.Context, baseURL, apiKey, model string, timeout time.Duration) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, errors.New("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiModel{client: client, model: model, timeout: timeout}, nil
}

func (g *GeminiModel) Generate(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromText(user, genai.RoleUser)}
	var cfg *genai.GenerateContentConfig
	if system != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("no response from AI model")
	}
	return text, nil
}
