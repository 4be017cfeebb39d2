package document

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
)

// Title is the heading printed at the top of every document.
const Title = "Analyzed Transcript"

const (
	titleSize  = 18
	bodySize   = 12
	bodyLineHt = 6.0

	builtinFamily = "Helvetica"
	unicodeFamily = "NotesBody"
)

// Compose writes a PDF with the centered title followed by content as
// left-aligned body text. It uses the built-in Helvetica, which only covers
// cp1252; other characters print as '.'. NewComposer lifts that limit.
func Compose(w io.Writer, content string, createdAt time.Time) error {
	return compose(w, content, createdAt, nil)
}

// NewComposer returns a ComposeFunc that sets all text in the TrueType font
// at fontPath, so any glyph the font carries renders. An empty path returns
// Compose. The font is loaded and checked once, here.
func NewComposer(fontPath string) (ComposeFunc, error) {
	if fontPath == "" {
		return Compose, nil
	}
	font, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("load pdf font: %w", err)
	}
	fn := func(w io.Writer, content string, createdAt time.Time) error {
		return compose(w, content, createdAt, font)
	}
	if err := fn(io.Discard, Title, time.Now()); err != nil {
		return nil, fmt.Errorf("load pdf font %s: %w", fontPath, err)
	}
	return fn, nil
}

func compose(w io.Writer, content string, createdAt time.Time, font []byte) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle(Title, true)
	pdf.SetCreator("studynotes", true)
	pdf.SetCreationDate(createdAt)

	family := builtinFamily
	tr := func(s string) string { return s }
	if font != nil {
		pdf.AddUTF8FontFromBytes(unicodeFamily, "", font)
		family = unicodeFamily
	} else {
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.AddPage()

	pdf.SetFont(family, "", titleSize)
	_, titleHt := pdf.GetFontSize()
	pdf.CellFormat(0, titleHt*1.5, tr(Title), "", 1, "C", false, 0, "")
	pdf.Ln(titleHt)

	pdf.SetFont(family, "", bodySize)
	pdf.MultiCell(0, bodyLineHt, tr(content), "", "L", false)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("compose pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// AttachmentName is the download filename offered to the client.
func AttachmentName(t time.Time) string {
	return fmt.Sprintf("analyzed_transcript_%d.pdf", t.UnixMilli())
}
