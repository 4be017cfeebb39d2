package tui

// Messages for the tea program, one per pipeline stage

// TranscriptFetchedMsg is sent when the transcript request finishes
type TranscriptFetchedMsg struct {
	Transcript string
	Err        error
}

// AnalysisCompleteMsg is sent when the analysis request finishes
type AnalysisCompleteMsg struct {
	Notes string
	Err   error
}

// DownloadCompleteMsg is sent when the PDF has been saved locally
type DownloadCompleteMsg struct {
	Path string
	Err  error
}
