package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// FetchTranscript creates a command to fetch the transcript for videoURL
func FetchTranscript(b Backend, videoURL string) tea.Cmd {
	return func() tea.Msg {
		text, err := b.Transcript(context.Background(), videoURL)
		return TranscriptFetchedMsg{Transcript: text, Err: err}
	}
}

// AnalyzeTranscript creates a command to turn the transcript into notes
func AnalyzeTranscript(b Backend, transcript string) tea.Cmd {
	return func() tea.Msg {
		notes, err := b.Analyze(context.Background(), transcript)
		return AnalysisCompleteMsg{Notes: notes, Err: err}
	}
}

// DownloadPDF creates a command to render the notes and save the PDF in dir
func DownloadPDF(b Backend, notes, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := b.DownloadPDF(context.Background(), notes, dir)
		return DownloadCompleteMsg{Path: path, Err: err}
	}
}
