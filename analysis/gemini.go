package analysis

import (
	"context"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"
)

const (
	// DefaultGeminiBaseURL is Google's OpenAI-compatible endpoint.
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultGeminiModel   = "gemini-1.5-flash"

	defaultGeminiMaxTokens   = 8192
	defaultGeminiTemperature = 0.7
)

// GeminiConfig configures a GeminiGenerator. Zero values take defaults.
type GeminiConfig struct {
	BaseURL      string
	APIKey       string
	FallbackKeys []string
	Model        string
	MaxTokens    int
	Temperature  float64
	HTTPClient   *http.Client
}

// GeminiGenerator talks to Gemini through its OpenAI-compatible chat API.
type GeminiGenerator struct {
	client *llm.Client
	model  string
}

// NewGeminiGenerator constructs a generator from cfg.
func NewGeminiGenerator(cfg GeminiConfig) *GeminiGenerator {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultGeminiMaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultGeminiTemperature
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}

	var fallbacks []string
	for _, k := range cfg.FallbackKeys {
		if k = strings.TrimSpace(k); k != "" {
			fallbacks = append(fallbacks, k)
		}
	}

	client := llm.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Model,
		llm.WithFallbackKeys(fallbacks),
		llm.WithMaxTokens(cfg.MaxTokens),
		llm.WithTemperature(cfg.Temperature),
		llm.WithHTTPClient(cfg.HTTPClient),
	)
	return &GeminiGenerator{client: client, model: cfg.Model}
}

func (g *GeminiGenerator) Model() string { return g.model }

// Generate sends prompt as a single user turn with no system prompt.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.client.Complete(ctx, "", prompt)
}
