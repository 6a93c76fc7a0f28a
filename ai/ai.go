package ai

import (
	"context"
	"fmt"
	"time"

	"datachat/config"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Model answers one system instruction plus one user message with free-form text.
type Model interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// New builds the model client for the configured provider. It returns (nil, nil) when no API
// key is configured so callers can show the missing-key banner instead of failing.
func New(ctx context.Context, cfg config.LLMConfig) (Model, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	switch cfg.Provider {
	case "gemini", "":
		m, err := NewGeminiModel(ctx, cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "openai":
		return NewChatCompletionModel(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
