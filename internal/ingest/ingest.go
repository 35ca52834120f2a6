// Package ingest turns paper files into term counts and submits them to the
// index.
package ingest

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Player01osu/paper-engine/internal/extract"
	"github.com/Player01osu/paper-engine/internal/index"
	"github.com/Player01osu/paper-engine/internal/tokenize"
)

// Submitter extracts, tokenizes, and ingests papers.
type Submitter struct {
	store     *index.Store
	extractor *extract.Extractor
	logger    *zap.Logger // optional; when set, logs each submission
}

// SubmitterOption configures a Submitter.
type SubmitterOption func(*Submitter)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) SubmitterOption {
	return func(s *Submitter) { s.logger = l }
}

// NewSubmitter creates a submitter feeding the given store.
func NewSubmitter(store *index.Store, extractor *extract.Extractor, opts ...SubmitterOption) *Submitter {
	s := &Submitter{store: store, extractor: extractor}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitFile indexes the paper at path. The document title comes from the
// file's own metadata when the format carries one (PDF), otherwise the path
// is the title. A title collision is resolved by policy. Returns the title
// the document was submitted under.
func (s *Submitter) SubmitFile(path string, policy index.DupePolicy) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("submit %q: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("submit %q: not a regular file", path)
	}

	paper, err := s.extractor.Extract(path)
	if err != nil {
		return "", fmt.Errorf("submit %q: %w", path, err)
	}
	title := paper.Title
	if title == "" {
		title = path
	}

	counts := tokenize.CountTerms(paper.Text, s.store.Pool())
	if err := s.store.Ingest(title, path, counts, policy); err != nil {
		return "", fmt.Errorf("submit %q: %w", path, err)
	}
	if s.logger != nil {
		s.logger.Debug("paper submitted",
			zap.String("path", path),
			zap.String("title", title),
			zap.Int("distinct_terms", len(counts)),
			zap.String("dupe_policy", string(policy)),
		)
	}
	return title, nil
}
