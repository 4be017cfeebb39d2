package youtube

import (
	"context"
	"log/slog"
	"time"

	"studynotes/common"
	"studynotes/types"
)

// Fetcher turns a video identifier into a TranscriptDocument using a single
// call to the caption provider.
type Fetcher struct {
	provider CaptionProvider
	timeout  time.Duration
	logger   *slog.Logger
}

// NewFetcher constructs a Fetcher. A zero timeout leaves the caller's
// context deadline in charge.
func NewFetcher(provider CaptionProvider, timeout time.Duration, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{provider: provider, timeout: timeout, logger: logger}
}

// Fetch calls the provider exactly once. Provider failures are returned as
// ErrUpstreamFetch with the provider's message kept verbatim.
func (f *Fetcher) Fetch(ctx context.Context, videoID string) (types.TranscriptDocument, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	started := time.Now()
	segments, err := f.provider.Segments(ctx, videoID)
	if err != nil {
		f.logger.Warn("transcript fetch failed",
			slog.String("video_id", videoID),
			slog.Any("error", err),
		)
		return types.TranscriptDocument{}, common.Wrap(common.ErrUpstreamFetch, "fetch transcript", err)
	}

	doc := types.NewTranscriptDocument(videoID, segments)
	f.logger.Info("transcript fetched",
		slog.String("video_id", videoID),
		slog.Int("segments", len(segments)),
		slog.Int("chars", len(doc.Text())),
		slog.Duration("elapsed", time.Since(started)),
	)
	return doc, nil
}

// Transcript resolves a caller locator and fetches its transcript. The two
// steps run strictly in sequence.
func (f *Fetcher) Transcript(ctx context.Context, locator string) (types.TranscriptDocument, error) {
	ref, err := ResolveReference(locator)
	if err != nil {
		return types.TranscriptDocument{}, err
	}
	return f.Fetch(ctx, ref.ID)
}
