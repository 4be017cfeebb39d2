package tui

// UI Text Constants
const (
	TextTitle = "📚 Study Notes from YouTube"

	TextPrompt         = "YouTube URL: "
	TextInputHelp      = "Type or paste a URL, press Enter to start | Esc or Ctrl+C to quit"
	TextFooterRunning  = "Press 'q' or Ctrl+C to quit"
	TextFooterFinished = "Press 'r' to start over | Press 'q' or Ctrl+C to exit"

	maxLogLines     = 10
	notesPreviewLen = 400
)
