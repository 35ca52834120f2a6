package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// extractPDF extracts the page text of a PDF. When the document information
// dictionary carries a Title entry it becomes the paper's title; most
// published papers set it.
func extractPDF(content []byte) (Paper, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return Paper{}, fmt.Errorf("open PDF: %w", err)
	}

	var buf bytes.Buffer
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return Paper{}, fmt.Errorf("extract page %d: %w", i, err)
		}
		buf.WriteString(text)
		if i < numPages {
			buf.WriteByte('\n')
		}
	}
	return Paper{Title: pdfTitle(r), Text: buf.String()}, nil
}

// pdfTitle reads /Info /Title from the trailer, if present.
func pdfTitle(r *pdf.Reader) string {
	info := r.Trailer().Key("Info")
	if info.Kind() != pdf.Dict {
		return ""
	}
	title := info.Key("Title")
	if title.Kind() != pdf.String {
		return ""
	}
	return title.RawString()
}
