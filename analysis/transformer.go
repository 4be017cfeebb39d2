package analysis

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"studynotes/common"
	"studynotes/types"
)

const opAnalyze = "analyze transcript"

// Transformer turns raw transcript text into study-oriented text using a
// Generator. Each call issues exactly one generation request.
type Transformer struct {
	gen     Generator
	timeout time.Duration
	logger  *slog.Logger
}

// NewTransformer returns a Transformer. A non-positive timeout disables the
// per-request deadline and a nil logger uses slog.Default().
func NewTransformer(gen Generator, timeout time.Duration, logger *slog.Logger) *Transformer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transformer{gen: gen, timeout: timeout, logger: logger}
}

// Transform analyzes transcript. Empty input is a validation error and no
// request is sent; any other text, whitespace included, is sent as-is.
func (t *Transformer) Transform(ctx context.Context, transcript string) (types.AnalysisResult, error) {
	if transcript == "" {
		return types.AnalysisResult{}, common.New(common.ErrValidation, opAnalyze, "Transcript is required.")
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := t.gen.Generate(ctx, BuildPrompt(transcript))
	if err != nil {
		t.logger.Error("generation failed",
			"model", t.gen.Model(),
			"elapsed", time.Since(start),
			"error", err,
		)
		return types.AnalysisResult{}, common.Wrap(common.ErrUpstreamGeneration, opAnalyze, err)
	}
	if strings.TrimSpace(text) == "" {
		t.logger.Error("generation returned no text", "model", t.gen.Model())
		return types.AnalysisResult{}, common.New(common.ErrUpstreamGeneration, opAnalyze, "empty response from model")
	}

	t.logger.Info("transcript analyzed",
		"model", t.gen.Model(),
		"input_chars", len(transcript),
		"output_chars", len(text),
		"elapsed", time.Since(start),
	)
	return types.AnalysisResult{Text: text, Model: t.gen.Model()}, nil
}
