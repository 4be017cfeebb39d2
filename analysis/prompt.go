package analysis

import "strings"

// promptTemplate is the single instruction sent to the model. The
// transcript is embedded verbatim in place of the placeholder.
const promptTemplate = `
Please analyze the following transcript and reformat it into a clear, structured layout with:
- Key points highlighted
- Easy-to-understand language
- Visual examples or scenarios where applicable
- Bonus tips to support learning

Transcript: 
{{transcript}}
`

const transcriptPlaceholder = "{{transcript}}"

// BuildPrompt embeds transcript into the fixed instruction template.
func BuildPrompt(transcript string) string {
	return strings.Replace(promptTemplate, transcriptPlaceholder, transcript, 1)
}
