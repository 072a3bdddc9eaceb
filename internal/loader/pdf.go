package loader

import (
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// loadPDF extracts plain text from every page of a PDF, separated by blank
// lines so page boundaries behave like paragraph breaks for the chunker.
func loadPDF(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening pdf %s: %v", ErrParse, path, err)
	}
	defer f.Close()

	var b strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not discard the rest.
			continue
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}

	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no extractable text in %s (corrupted or image-only pdf)", ErrParse, path)
	}
	return text, nil
}
