// Package docxreport renders an analysis report as a downloadable Word
// document.
package docxreport

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	docx "github.com/fumiama/go-docx"
)

const disclaimer = "DISCLAIMER: This report was generated by artificial intelligence. It does not constitute binding legal advice. Consult a licensed attorney."

// Build renders the report into .docx bytes: heading, generation timestamp,
// the verbatim report text and the fixed non-binding disclaimer.
func Build(report, filename string, generatedAt time.Time) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText("Legal Report: " + filename).Size("36").Bold()
	doc.AddParagraph().AddText("Analysis date: " + generatedAt.Format("2006-01-02 15:04"))
	doc.AddParagraph().AddText("Generated by LegalAI. Preliminary review only.")
	doc.AddParagraph()

	doc.AddParagraph().AddText("Detailed Analysis").Size("28").Bold()
	// The report arrives as Markdown; inserting it line by line keeps the
	// structure readable in Word without a Markdown renderer.
	for _, line := range strings.Split(report, "\n") {
		p := doc.AddParagraph()
		if strings.TrimSpace(line) != "" {
			p.AddText(line)
		}
	}

	doc.AddParagraph().AddText("---")
	doc.AddParagraph().AddText(disclaimer)

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx failed: %w", err)
	}
	return buf.Bytes(), nil
}
