package api

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"studynotes/document"
	"studynotes/logging"
	"studynotes/types"
)

// TranscriptSource resolves a video locator and returns its transcript.
type TranscriptSource interface {
	Transcript(ctx context.Context, locator string) (types.TranscriptDocument, error)
}

// Analyzer rewrites transcript text into study notes.
type Analyzer interface {
	Transform(ctx context.Context, transcript string) (types.AnalysisResult, error)
}

// DocumentRenderer renders content and hands the result to deliver.
type DocumentRenderer interface {
	Render(ctx context.Context, content string, deliver document.DeliverFunc) error
}

// Services are the collaborators the HTTP handlers depend on.
type Services struct {
	Transcripts TranscriptSource
	Analyzer    Analyzer
	Documents   DocumentRenderer
	Logger      *slog.Logger
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(svc Services) *gin.Engine {
	logger := svc.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger(logger))

	RegisterTranscriptRoutes(r, svc.Transcripts, logger)
	RegisterAnalysisRoutes(r, svc.Analyzer, logger)
	RegisterDocumentRoutes(r, svc.Documents, logger)
	RegisterHealthRoutes(r)
	return r
}
