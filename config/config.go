package config

import (
	"os"
	"strconv"
	"time"

	"datachat/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const DefaultSystemPrompt = "You are a business analyst."

type Config struct {
	Port        string `validate:"required,numeric"`
	GinMode     string `validate:"oneof=debug release test"`
	Environment string `validate:"required"`
	AuthConfig  string `validate:"required"`
	LogFilePath string `validate:"required"`
	CorsOrigins string
	MaxUploadMB int `validate:"min=1"`
	PreviewRows int `validate:"min=1"`
	LLM         LLMConfig
	Session     SessionConfig
}

type LLMConfig struct {
	// APIKey may be empty; the chat feature is then disabled with a banner.
	APIKey       string
	Provider     string        `validate:"oneof=gemini openai"`
	Model        string        `validate:"required"`
	BaseURL      string        `validate:"required_if=Provider openai"`
	Timeout      time.Duration `validate:"min=0"`
	SystemPrompt string        `validate:"required"`
}

type SessionConfig struct {
	Store  string `validate:"oneof=memory badger"`
	DBPath string `validate:"required_if=Store badger"`
}

// Load reads .env (if present) and the process environment, then validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "9090"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		Environment: getEnv("GO_ENV", "development"),
		AuthConfig:  getEnv("AUTH_CONFIG", "config.yaml"),
		LogFilePath: getEnv("LOG_FILE_PATH", "./logs/app.log"),
		CorsOrigins: getEnv("CORS_ALLOWED_ORIGINS", ""),
		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 200),
		PreviewRows: getEnvInt("PREVIEW_ROWS", 10),
		LLM: LLMConfig{
			APIKey:       os.Getenv("GOOGLE_API_KEY"),
			Provider:     getEnv("LLM_PROVIDER", "gemini"),
			Model:        getEnv("LLM_MODEL", "gemini-2.5-flash"),
			BaseURL:      getEnv("LLM_BASE_URL", ""),
			Timeout:      getEnvDuration("LLM_TIMEOUT", 120*time.Second),
			SystemPrompt: getEnv("SYSTEM_PROMPT", DefaultSystemPrompt),
		},
		Session: SessionConfig{
			Store:  getEnv("SESSION_STORE", "memory"),
			DBPath: getEnv("DB_PATH", "./data/badger"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperr.Wrap(err, apperr.CodeConfigInvalid, "configuration validation failed")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
