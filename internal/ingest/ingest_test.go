package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Player01osu/paper-engine/internal/extract"
	"github.com/Player01osu/paper-engine/internal/index"
	"github.com/Player01osu/paper-engine/internal/intern"
	"github.com/Player01osu/paper-engine/internal/tokenize"
)

func writeNote(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSubmitFile(t *testing.T) {
	pool := intern.NewPool()
	store := index.NewStore(pool)
	sub := NewSubmitter(store, extract.NewExtractor())

	path := writeNote(t, t.TempDir(), "cats.txt", "cats cats dog")
	title, err := sub.SubmitFile(path, index.DupeFail)
	if err != nil {
		t.Fatal(err)
	}
	if title != path {
		t.Errorf("title: got %q, want the path (plain text has no metadata)", title)
	}

	doc, ok := store.Lookup(path)
	if !ok {
		t.Fatal("document missing after submit")
	}
	// Two distinct terms: freq(cat)=2/2, freq(dog)=1/2.
	if got := doc.TermFreq[pool.Intern(tokenize.Normalize("cats"))]; got != 1.0 {
		t.Errorf("freq(cat): got %v, want 1.0", got)
	}
	if got := doc.TermFreq[pool.Intern("dog")]; got != 0.5 {
		t.Errorf("freq(dog): got %v, want 0.5", got)
	}
}

func TestSubmitFileMissing(t *testing.T) {
	store := index.NewStore(intern.NewPool())
	sub := NewSubmitter(store, extract.NewExtractor())
	if _, err := sub.SubmitFile(filepath.Join(t.TempDir(), "nope.txt"), index.DupeFail); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSubmitFileDirectory(t *testing.T) {
	store := index.NewStore(intern.NewPool())
	sub := NewSubmitter(store, extract.NewExtractor())
	if _, err := sub.SubmitFile(t.TempDir(), index.DupeFail); err == nil {
		t.Error("expected error for directory")
	}
}

func TestSubmitFileDuplicatePolicies(t *testing.T) {
	store := index.NewStore(intern.NewPool())
	sub := NewSubmitter(store, extract.NewExtractor())
	path := writeNote(t, t.TempDir(), "a.txt", "cat dog")

	if _, err := sub.SubmitFile(path, index.DupeFail); err != nil {
		t.Fatal(err)
	}
	_, err := sub.SubmitFile(path, index.DupeFail)
	var dup *index.DuplicateTitleError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateTitleError, got %v", err)
	}
	if _, err := sub.SubmitFile(path, index.DupeReplace); err != nil {
		t.Errorf("replace: %v", err)
	}
	if _, err := sub.SubmitFile(path, index.DupeIgnore); err != nil {
		t.Errorf("ignore: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("len: got %d, want 1", store.Len())
	}
}
