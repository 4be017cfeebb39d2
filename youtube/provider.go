package youtube

import (
	"context"

	"studynotes/types"
)

// CaptionProvider is the upstream transcript source. Implementations return
// the segments of one video in provider order, or an error whose message
// describes the upstream failure (captions disabled, video unavailable, ...).
type CaptionProvider interface {
	Segments(ctx context.Context, videoID string) ([]types.TranscriptSegment, error)
}

// CaptionProviderFunc adapts a function to CaptionProvider.
type CaptionProviderFunc func(ctx context.Context, videoID string) ([]types.TranscriptSegment, error)

// Segments calls f.
func (f CaptionProviderFunc) Segments(ctx context.Context, videoID string) ([]types.TranscriptSegment, error) {
	return f(ctx, videoID)
}
