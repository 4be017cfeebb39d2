package tui

import "context"

// Backend is the subset of the API client the TUI drives.
type Backend interface {
	Transcript(ctx context.Context, videoURL string) (string, error)
	Analyze(ctx context.Context, transcript string) (string, error)
	DownloadPDF(ctx context.Context, content, dir string) (string, error)
}
