// Package config loads service settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/joho/godotenv"

	"studynotes/analysis"
)

// Config is the full runtime configuration.
type Config struct {
	Port            string
	ShutdownTimeout time.Duration

	LogLevel  string
	LogFormat string

	Generator         string
	GoogleAPIKey      string
	GoogleAPIKeys     []string
	GeminiAPIBase     string
	GeminiModel       string
	GeminiMaxTokens   int
	GeminiTemperature float64
	CohereAPIKey      string
	CohereModel       string

	TranscriptLangs   []string
	TranscriptTimeout time.Duration
	GenerationTimeout time.Duration
	RenderTimeout     time.Duration
	PDFFontPath       string

	ArtifactStore  string
	DownloadsDir   string
	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool

	JanitorSchedule string
	ArtifactMaxAge  time.Duration
}

// Load reads the given env files (".env" when none are named) and then the
// process environment. Variables already set in the environment win over the
// files, and a missing file is not an error.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the current process environment.
func FromEnv() *Config {
	return &Config{
		Port:            env.Str("PORT", DefaultPort),
		ShutdownTimeout: env.Duration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),

		LogLevel:  env.Str("LOG_LEVEL", "info"),
		LogFormat: env.Str("LOG_FORMAT", "text"),

		Generator:         strings.ToLower(env.Str("GENERATOR", DefaultGenerator)),
		GoogleAPIKey:      env.Str("GOOGLE_API_KEY", ""),
		GoogleAPIKeys:     env.List("GOOGLE_API_KEY_FALLBACKS", ""),
		GeminiAPIBase:     env.Str("GEMINI_API_BASE", analysis.DefaultGeminiBaseURL),
		GeminiModel:       env.Str("GEMINI_MODEL", analysis.DefaultGeminiModel),
		GeminiMaxTokens:   env.Int("GEMINI_MAX_TOKENS", DefaultGeminiMaxTokens),
		GeminiTemperature: env.Float("GEMINI_TEMPERATURE", DefaultGeminiTemperature),
		CohereAPIKey:      env.Str("COHERE_API_KEY", ""),
		CohereModel:       env.Str("COHERE_MODEL", analysis.DefaultCohereModel),

		TranscriptLangs:   env.List("TRANSCRIPT_LANGS", DefaultTranscriptLangs),
		TranscriptTimeout: env.Duration("TRANSCRIPT_TIMEOUT", DefaultTranscriptTimeout),
		GenerationTimeout: env.Duration("GENERATION_TIMEOUT", DefaultGenerationTimeout),
		RenderTimeout:     env.Duration("RENDER_TIMEOUT", DefaultRenderTimeout),
		PDFFontPath:       env.Str("PDF_FONT_PATH", ""),

		ArtifactStore:  strings.ToLower(env.Str("ARTIFACT_STORE", DefaultArtifactStore)),
		DownloadsDir:   env.Str("DOWNLOADS_DIR", DefaultDownloadsDir),
		S3Bucket:       env.Str("S3_BUCKET", ""),
		S3Region:       env.Str("S3_REGION", ""),
		S3Profile:      env.Str("S3_PROFILE", ""),
		S3Prefix:       env.Str("S3_PREFIX", "tmp/pdf"),
		S3UsePathStyle: strings.EqualFold(env.Str("S3_USE_PATH_STYLE", "false"), "true"),

		JanitorSchedule: env.Str("JANITOR_SCHEDULE", DefaultJanitorSchedule),
		ArtifactMaxAge:  env.Duration("ARTIFACT_MAX_AGE", DefaultArtifactMaxAge),
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("PORT must be numeric, got %q", c.Port))
	}

	switch c.Generator {
	case analysis.ProviderGemini:
		if c.GoogleAPIKey == "" {
			errs = append(errs, errors.New("GOOGLE_API_KEY is required when GENERATOR=gemini"))
		}
	case analysis.ProviderCohere:
		if c.CohereAPIKey == "" {
			errs = append(errs, errors.New("COHERE_API_KEY is required when GENERATOR=cohere"))
		}
	default:
		errs = append(errs, fmt.Errorf("GENERATOR must be gemini or cohere, got %q", c.Generator))
	}

	switch c.ArtifactStore {
	case StoreLocal:
		if strings.TrimSpace(c.DownloadsDir) == "" {
			errs = append(errs, errors.New("DOWNLOADS_DIR is required when ARTIFACT_STORE=local"))
		}
	case StoreS3:
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required when ARTIFACT_STORE=s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("ARTIFACT_STORE must be local or s3, got %q", c.ArtifactStore))
	}

	for name, d := range map[string]time.Duration{
		"TRANSCRIPT_TIMEOUT": c.TranscriptTimeout,
		"GENERATION_TIMEOUT": c.GenerationTimeout,
		"RENDER_TIMEOUT":     c.RenderTimeout,
		"SHUTDOWN_TIMEOUT":   c.ShutdownTimeout,
		"ARTIFACT_MAX_AGE":   c.ArtifactMaxAge,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}
	if floor := c.MinArtifactAge(); c.ArtifactMaxAge > 0 && c.RenderTimeout > 0 && c.ArtifactMaxAge < floor {
		errs = append(errs, fmt.Errorf("ARTIFACT_MAX_AGE must be at least %s (RENDER_TIMEOUT + server write timeout), got %s", floor, c.ArtifactMaxAge))
	}
	return errors.Join(errs...)
}

// MinArtifactAge is the longest a single download can keep its artifact
// alive. Sweeping anything younger could remove a file still streaming.
func (c *Config) MinArtifactAge() time.Duration {
	return c.RenderTimeout + WriteTimeout
}

// GeneratorConfig returns the settings for the selected generator.
func (c *Config) GeneratorConfig() analysis.GeneratorConfig {
	if c.Generator == analysis.ProviderCohere {
		return analysis.GeneratorConfig{
			Provider: c.Generator,
			APIKey:   c.CohereAPIKey,
			Model:    c.CohereModel,
		}
	}
	return analysis.GeneratorConfig{
		Provider:     c.Generator,
		APIKey:       c.GoogleAPIKey,
		FallbackKeys: c.GoogleAPIKeys,
		Model:        c.GeminiModel,
		BaseURL:      c.GeminiAPIBase,
		MaxTokens:    c.GeminiMaxTokens,
		Temperature:  c.GeminiTemperature,
	}
}

// LogValue keeps secrets out of startup logs.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("port", c.Port),
		slog.String("generator", c.Generator),
		slog.String("artifact_store", c.ArtifactStore),
		slog.Any("transcript_langs", c.TranscriptLangs),
		slog.Duration("generation_timeout", c.GenerationTimeout),
		slog.Bool("unicode_pdf_font", c.PDFFontPath != ""),
		slog.String("janitor_schedule", c.JanitorSchedule),
	)
}
