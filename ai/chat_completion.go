package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ChatCompletionModel talks to any OpenAI-compatible /chat/completions endpoint.
type ChatCompletionModel struct {
	apiKey     string
	modelName  string
	apiURL     string
	httpClient *http.Client
}

type ChatCompletionRequest struct {
	Model    string                  `json:"model"`
	Messages []ChatCompletionMessage `json:"messages"`
}

type ChatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionResponse struct {
	ID      string `json:"id,omitempty"`
	Choices []struct {
		Message ChatCompletionMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    interface{} `json:"code,omitempty"`
	Type    string      `json:"type,omitempty"`
	Message string      `json:"message"`
}

func NewChatCompletionModel(baseURL, apiKey, modelName string, timeout time.Duration) *ChatCompletionModel {
	return &ChatCompletionModel{
		apiKey:     apiKey,
		modelName:  modelName,
		apiURL:     strings.TrimSuffix(baseURL, "/") + "/chat/completions",
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (m *ChatCompletionModel) Generate(ctx context.Context, system, user string) (string, error) {
	reqBody := ChatCompletionRequest{Model: m.modelName}
	if system != "" {
		reqBody.Messages = append(reqBody.Messages, ChatCompletionMessage{Role: RoleSystem, Content: system})
	}
	reqBody.Messages = append(reqBody.Messages, ChatCompletionMessage{Role: RoleUser, Content: user})

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var out ChatCompletionResponse
	if resp.StatusCode != http.StatusOK {
		if err := json.Unmarshal(body, &out); err == nil && out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("API error: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", errors.New("no response from AI model")
	}
	return out.Choices[0].Message.Content, nil
}
