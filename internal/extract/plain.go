package extract

import (
	"strings"
	"unicode/utf8"
)

// extractPlain returns the content as-is, replacing invalid UTF-8 sequences
// with the replacement character.
func extractPlain(content []byte) (Paper, error) {
	if !utf8.Valid(content) {
		content = []byte(strings.ToValidUTF8(string(content), "�"))
	}
	return Paper{Text: string(content)}, nil
}
