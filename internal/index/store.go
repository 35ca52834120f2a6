// Package index implements the TF-IDF search core: the document store, the
// binary snapshot codec, and the ranker.
package index

import (
	"fmt"
	"sync"

	"github.com/Player01osu/paper-engine/internal/intern"
)

// DupePolicy selects how Ingest resolves a title collision.
type DupePolicy string

const (
	// DupeFail rejects the new document with a DuplicateTitleError.
	DupeFail DupePolicy = "fail"
	// DupeReplace removes the existing document and inserts the new one
	// under the same title. The corpus term counter is not decremented for
	// the removed document: the store keeps only normalized frequencies,
	// so the old raw counts cannot be reconstructed.
	DupeReplace DupePolicy = "replace"
	// DupeRename inserts the new document under the first free title among
	// "title-1", "title-2", and so on.
	DupeRename DupePolicy = "rename"
	// DupeIgnore keeps the store unchanged and reports success.
	DupeIgnore DupePolicy = "ignore"
)

// ParseDupePolicy maps a request parameter to a DupePolicy. The empty string
// is the default policy, fail.
func ParseDupePolicy(s string) (DupePolicy, error) {
	switch DupePolicy(s) {
	case "":
		return DupeFail, nil
	case DupeFail, DupeReplace, DupeRename, DupeIgnore:
		return DupePolicy(s), nil
	}
	return "", fmt.Errorf("unknown dupe policy %q (want fail, replace, rename, or ignore)", s)
}

// Document is one ingested paper: a unique title, the path it came from, and
// its term frequencies. Documents are built whole and replaced whole, never
// patched in place.
type Document struct {
	Title    string
	Path     string
	TermFreq map[intern.Term]float64
}

// Store is the authoritative index state: per-document term frequencies plus
// a corpus-wide term occurrence counter. The counter is persisted for
// snapshot compatibility and surfaced through TermStats; ranking does not
// consume it.
//
// A single RWMutex covers the whole store: searches share a read lock,
// ingestion holds the write lock for the duration of the mutation, so a
// reader never observes a document with only some of its terms present.
type Store struct {
	mu        sync.RWMutex
	pool      *intern.Pool
	termCount map[intern.Term]uint64
	documents map[string]*Document
}

// NewStore returns an empty store whose terms are interned in pool.
func NewStore(pool *intern.Pool) *Store {
	return &Store{
		pool:      pool,
		termCount: make(map[intern.Term]uint64),
		documents: make(map[string]*Document),
	}
}

// Pool returns the interning pool this store resolves terms against.
func (s *Store) Pool() *intern.Pool { return s.pool }

// Ingest adds a document built from raw term occurrence counts.
//
// Term frequency is computed as occurrenceCount / distinctTermCount — the
// number of distinct terms in the document, not the total number of
// occurrences. This is a deliberate departure from the textbook TF and is
// preserved because every persisted snapshot and every score depends on it.
//
// A title collision is resolved by policy; under DupeFail the returned error
// is a *DuplicateTitleError and the store is left exactly as it was. Every
// successful ingest (including replace and rename) adds the raw counts to
// the corpus term counter; DupeIgnore adds nothing.
func (s *Store) Ingest(title, path string, counts map[intern.Term]int, policy DupePolicy) error {
	distinct := len(counts)
	freq := make(map[intern.Term]float64, distinct)
	for term, n := range counts {
		freq[term] = float64(n) / float64(distinct)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.documents[title]; ok {
		switch policy {
		case DupeReplace:
			delete(s.documents, title)
		case DupeRename:
			title = s.freeTitleLocked(title)
		case DupeIgnore:
			return nil
		default:
			return &DuplicateTitleError{
				Title:        title,
				ExistingPath: existing.Path,
				OfferedPath:  path,
			}
		}
	}

	s.documents[title] = &Document{
		Title:    title,
		Path:     path,
		TermFreq: freq,
	}
	for term, n := range counts {
		s.termCount[term] += uint64(n)
	}
	return nil
}

// freeTitleLocked probes title-1, title-2, ... for the first unused title.
// Callers hold the write lock.
func (s *Store) freeTitleLocked(title string) string {
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", title, i)
		if _, taken := s.documents[candidate]; !taken {
			return candidate
		}
	}
}

// Len returns the number of documents in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// VocabSize returns the number of distinct terms seen across all ingested
// documents.
func (s *Store) VocabSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.termCount)
}

// TermStats resolves the corpus occurrence counter to text keys. Intended
// for status reporting and tests, not for the query path.
func (s *Store) TermStats() map[string]uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]uint64, len(s.termCount))
	for term, count := range s.termCount {
		text, err := s.pool.Resolve(term)
		if err != nil {
			continue
		}
		out[text] = count
	}
	return out
}

// Lookup returns a copy of the document stored under title.
func (s *Store) Lookup(title string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[title]
	if !ok {
		return Document{}, false
	}
	freq := make(map[intern.Term]float64, len(doc.TermFreq))
	for term, f := range doc.TermFreq {
		freq[term] = f
	}
	return Document{Title: doc.Title, Path: doc.Path, TermFreq: freq}, true
}
