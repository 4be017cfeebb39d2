package config

import "time"

// Server defaults
const (
	DefaultPort            = "3000"
	DefaultShutdownTimeout = 10 * time.Second
)

// Upstream defaults
const (
	DefaultGenerator         = "gemini"
	DefaultTranscriptLangs   = "en"
	DefaultTranscriptTimeout = 30 * time.Second
	DefaultGenerationTimeout = 120 * time.Second
	DefaultGeminiMaxTokens   = 8192
	DefaultGeminiTemperature = 0.7
)

// Artifact storage defaults
const (
	StoreLocal = "local"
	StoreS3    = "s3"

	DefaultArtifactStore   = StoreLocal
	DefaultDownloadsDir    = "downloads"
	DefaultRenderTimeout   = 60 * time.Second
	DefaultJanitorSchedule = "@every 15m"
	DefaultArtifactMaxAge  = time.Hour
)

// HTTP server timeouts. Writes get a generous bound because the analyze
// endpoint waits on the model before responding.
const (
	ReadHeaderTimeout = 10 * time.Second
	WriteTimeout      = 5 * time.Minute
	IdleTimeout       = 60 * time.Second
)
