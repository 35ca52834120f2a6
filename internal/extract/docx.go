package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// docxDocumentXML is the main document body inside a .docx package.
const docxDocumentXML = "word/document.xml"

// wtText matches the text nodes of a DOCX body, <w:t> with or without
// attributes, so content survives regardless of paragraph and run markup.
var wtText = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

func extractDOCX(content []byte) (Paper, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return Paper{}, fmt.Errorf("extract DOCX: not a zip: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != docxDocumentXML {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return Paper{}, fmt.Errorf("extract DOCX: open %s: %w", f.Name, err)
		}
		var body bytes.Buffer
		_, err = body.ReadFrom(rc)
		rc.Close()
		if err != nil {
			return Paper{}, fmt.Errorf("extract DOCX: read %s: %w", f.Name, err)
		}

		var out strings.Builder
		for _, m := range wtText.FindAllStringSubmatch(body.String(), -1) {
			out.WriteString(unescapeXML(m[1]))
			out.WriteByte(' ')
		}
		return Paper{Text: strings.TrimSpace(out.String())}, nil
	}
	return Paper{}, fmt.Errorf("extract DOCX: no %s in package", docxDocumentXML)
}

var xmlUnescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

func unescapeXML(s string) string {
	return xmlUnescaper.Replace(s)
}
