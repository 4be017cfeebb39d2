package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case TranscriptFetchedMsg:
		return m.handleTranscriptFetched(msg)
	case AnalysisCompleteMsg:
		return m.handleAnalysisComplete(msg)
	case DownloadCompleteMsg:
		return m.handleDownloadComplete(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.State == StateInput {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r", "R":
		if m.State == StateComplete || m.State == StateError {
			m.State = StateInput
			m.Transcript, m.Notes, m.PDFPath, m.Err = "", "", "", nil
		}
	}
	return m, nil
}

// handleInputKey edits the URL field and starts the pipeline on Enter
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		url := strings.TrimSpace(m.URL)
		if url == "" {
			return m, nil
		}
		m.URL = url
		m.State = StateFetching
		m = m.AddLog("Fetching transcript for " + url)
		return m, FetchTranscript(m.Backend, url)
	case tea.KeyBackspace:
		if r := []rune(m.URL); len(r) > 0 {
			m.URL = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		m.URL = ""
	case tea.KeyRunes, tea.KeySpace:
		m.URL += string(msg.Runes)
	}
	return m, nil
}

// handleTranscriptFetched moves on to analysis
func (m Model) handleTranscriptFetched(msg TranscriptFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m.fail(fmt.Errorf("transcript: %w", msg.Err))
	}
	m.Transcript = msg.Transcript
	m.State = StateAnalyzing
	m = m.AddLog(fmt.Sprintf("Fetched transcript (%d characters)", len(msg.Transcript)))
	return m, AnalyzeTranscript(m.Backend, msg.Transcript)
}

// handleAnalysisComplete moves on to the PDF download
func (m Model) handleAnalysisComplete(msg AnalysisCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m.fail(fmt.Errorf("analysis: %w", msg.Err))
	}
	m.Notes = msg.Notes
	m.State = StateDownloading
	m = m.AddLog("Analysis complete")
	return m, DownloadPDF(m.Backend, msg.Notes, m.OutputDir)
}

// handleDownloadComplete finishes the run
func (m Model) handleDownloadComplete(msg DownloadCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m.fail(fmt.Errorf("download: %w", msg.Err))
	}
	m.PDFPath = msg.Path
	m.State = StateComplete
	m = m.AddLog("Saved " + msg.Path)
	return m, nil
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.State = StateError
	m.Err = err
	m = m.AddLog(err.Error())
	return m, nil
}
