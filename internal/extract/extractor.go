// Package extract pulls plain text out of paper files so they can be
// tokenized and indexed.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Paper is the extracted content of one file. Title is set only when the
// format carries its own metadata (PDF); callers fall back to the path.
type Paper struct {
	Title string
	Text  string
}

// extractFunc turns raw file bytes into a Paper.
type extractFunc func(content []byte) (Paper, error)

// byExtension dispatches on the lower-cased file extension. Anything not
// listed is treated as plain text.
var byExtension = map[string]extractFunc{
	".pdf":  extractPDF,
	".docx": extractDOCX,
	".xlsx": extractExcel,
	".txt":  extractPlain,
	".md":   extractPlain,
	"":      extractPlain,
}

// Extractor extracts text from paper files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Supported reports whether ext names a format with a dedicated extractor.
// ext includes the leading dot.
func (e *Extractor) Supported(ext string) bool {
	_, ok := byExtension[strings.ToLower(ext)]
	return ok
}

// Extract reads the file at path and returns its content.
func (e *Extractor) Extract(path string) (Paper, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Paper{}, fmt.Errorf("read file: %w", err)
	}
	return e.ExtractBytes(content, filepath.Ext(path))
}

// ExtractBytes extracts text from content based on the given extension.
// Unknown extensions fall back to plain text.
func (e *Extractor) ExtractBytes(content []byte, ext string) (Paper, error) {
	fn, ok := byExtension[strings.ToLower(ext)]
	if !ok {
		fn = extractPlain
	}
	return fn(content)
}
