package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// State represents the application state machine
type State string

const (
	StateInput       State = "input"
	StateFetching    State = "fetching"
	StateAnalyzing   State = "analyzing"
	StateDownloading State = "downloading"
	StateComplete    State = "complete"
	StateError       State = "error"
)

// Model represents the TUI client state
type Model struct {
	Backend   Backend
	OutputDir string

	URL        string
	State      State
	Transcript string
	Notes      string
	PDFPath    string
	Err        error
	Logs       []string
}

// NewModel creates a new TUI model. A non-empty url is pre-filled.
func NewModel(backend Backend, url, outputDir string) Model {
	return Model{
		Backend:   backend,
		OutputDir: outputDir,
		URL:       url,
		State:     StateInput,
		Logs:      make([]string, 0, maxLogLines),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return nil
}

// AddLog appends a timestamped line, keeping only the most recent entries
func (m Model) AddLog(msg string) Model {
	m.Logs = append(m.Logs, fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg))
	if len(m.Logs) > maxLogLines {
		m.Logs = m.Logs[len(m.Logs)-maxLogLines:]
	}
	return m
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	switch m.State {
	case StateInput:
		return HighlightStyle.Render("👋 Ready to start!") + "\n\n" +
			PromptStyle.Render(TextPrompt) + m.URL + "█"
	case StateFetching:
		return StatusStyle.Render("⏳ Fetching transcript...")
	case StateAnalyzing:
		return StatusStyle.Render(fmt.Sprintf("🧠 Analyzing transcript (%d characters)...", len(m.Transcript)))
	case StateDownloading:
		return StatusStyle.Render("📄 Rendering PDF...")
	case StateComplete:
		return HighlightStyle.Render("✅ COMPLETE")
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return ErrorStyle.Render(fmt.Sprintf("❌ Error: %v", errMsg))
	default:
		return ""
	}
}

// formatResult formats the finished run for display
func (m Model) formatResult() string {
	var b strings.Builder

	b.WriteString(HighlightStyle.Render("Study Notes"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Saved to: %s\n\n", StatusStyle.Render(m.PDFPath))

	preview := m.Notes
	if r := []rune(preview); len(r) > notesPreviewLen {
		preview = string(r[:notesPreviewLen]) + "..."
	}
	fmt.Fprintf(&b, "Preview:\n%s\n", InfoStyle.Render(preview))
	return b.String()
}
