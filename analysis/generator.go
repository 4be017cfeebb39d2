package analysis

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Generator is an upstream generative-text service: one prompt in, one
// complete text response out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Provider names accepted by NewGenerator.
const (
	ProviderGemini = "gemini"
	ProviderCohere = "cohere"
)

// GeneratorConfig selects and configures a Generator.
type GeneratorConfig struct {
	Provider     string
	APIKey       string
	FallbackKeys []string
	Model        string
	BaseURL      string
	MaxTokens    int
	Temperature  float64
	HTTPClient   *http.Client
}

// NewGenerator builds the configured generator. Gemini is the default.
func NewGenerator(cfg GeneratorConfig) (Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("generator %q: api key is required", cfg.Provider)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderGemini:
		return NewGeminiGenerator(GeminiConfig{
			BaseURL:      cfg.BaseURL,
			APIKey:       cfg.APIKey,
			FallbackKeys: cfg.FallbackKeys,
			Model:        cfg.Model,
			MaxTokens:    cfg.MaxTokens,
			Temperature:  cfg.Temperature,
			HTTPClient:   httpClient,
		}), nil
	case ProviderCohere:
		return NewCohereGenerator(cfg.APIKey, cfg.Model, httpClient), nil
	default:
		return nil, fmt.Errorf("generator: unsupported provider %q", cfg.Provider)
	}
}
