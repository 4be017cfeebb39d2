package tui

import "strings"

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n\n")

	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	if len(m.Logs) > 0 {
		b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		for _, logMsg := range m.Logs {
			b.WriteString(InfoStyle.Render("   " + logMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.State == StateComplete {
		b.WriteString(BoxStyle.Render(m.formatResult()))
		b.WriteString("\n\n")
	}

	switch m.State {
	case StateInput:
		b.WriteString(InfoStyle.Render(TextInputHelp))
	case StateComplete, StateError:
		b.WriteString(HighlightStyle.Render(TextFooterFinished))
	default:
		b.WriteString(InfoStyle.Render(TextFooterRunning))
	}

	return b.String()
}
