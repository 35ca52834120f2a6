package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Player01osu/paper-engine/internal/index"
	"github.com/Player01osu/paper-engine/internal/intern"
)

func TestLoadMissingFile(t *testing.T) {
	store, err := Load(filepath.Join(t.TempDir(), "absent.pec"), intern.NewPool())
	if err != nil {
		t.Fatalf("missing snapshot is the first-run case, got %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("len: got %d, want 0", store.Len())
	}
}

func TestSaveThenLoad(t *testing.T) {
	pool := intern.NewPool()
	store := index.NewStore(pool)
	counts := map[intern.Term]int{pool.Intern("cat"): 2, pool.Intern("dog"): 1}
	if err := store.Ingest("paper", "/papers/a.pdf", counts, index.DupeFail); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "cache", "paper-engine.pec")
	if err := Save(path, store); err != nil {
		t.Fatal(err)
	}
	if SizeBytes(path) == 0 {
		t.Error("SizeBytes reports empty snapshot after save")
	}

	loaded, err := Load(path, intern.NewPool())
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("len: got %d, want 1", loaded.Len())
	}
	doc, ok := loaded.Lookup("paper")
	if !ok || doc.Path != "/papers/a.pdf" {
		t.Errorf("loaded document: %+v, ok=%v", doc, ok)
	}
}

func TestLoadMalformedSnapshotFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pec")
	if err := os.WriteFile(path, []byte{0x7f, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, intern.NewPool()); err == nil {
		t.Error("malformed snapshot must fail the load")
	}
}

func TestSizeBytesMissing(t *testing.T) {
	if got := SizeBytes(filepath.Join(t.TempDir(), "absent.pec")); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}
