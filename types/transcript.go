package types

import (
	"strings"
	"time"
)

// VideoReference pairs the locator a caller supplied with the canonical
// 11-character video identifier resolved from it.
type VideoReference struct {
	Locator string `json:"locator"`
	ID      string `json:"video_id"`
}

// TranscriptSegment is one timed caption fragment as reported by the
// transcript provider.
type TranscriptSegment struct {
	Start    time.Duration `json:"start"`
	Duration time.Duration `json:"duration"`
	Text     string        `json:"text"`
}

// TranscriptDocument is the provider-ordered segment list of one video plus
// its full text. The text is derived once from the segments and cannot be
// set independently.
type TranscriptDocument struct {
	VideoID  string
	segments []TranscriptSegment
	text     string
}

// NewTranscriptDocument copies segments and derives the full text by joining
// every segment text with a single space, in order.
func NewTranscriptDocument(videoID string, segments []TranscriptSegment) TranscriptDocument {
	cp := make([]TranscriptSegment, len(segments))
	copy(cp, segments)
	return TranscriptDocument{
		VideoID:  videoID,
		segments: cp,
		text:     JoinSegmentText(cp),
	}
}

// Segments returns a copy of the ordered segments.
func (d TranscriptDocument) Segments() []TranscriptSegment {
	cp := make([]TranscriptSegment, len(d.segments))
	copy(cp, d.segments)
	return cp
}

// Text returns the derived full text.
func (d TranscriptDocument) Text() string { return d.text }

// JoinSegmentText concatenates segment texts with single-space separators.
// Segment text is used as-is; nothing is trimmed or deduplicated.
func JoinSegmentText(segments []TranscriptSegment) string {
	parts := make([]string, len(segments))
	for i, seg := range segments {
		parts[i] = seg.Text
	}
	return strings.Join(parts, " ")
}

// AnalysisResult is the generated study text returned by the content
// transformer. Its structure is whatever the model produced.
type AnalysisResult struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}
