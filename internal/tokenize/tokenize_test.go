package tokenize

import (
	"testing"

	"github.com/Player01osu/paper-engine/internal/intern"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Running", "run"},
		{"CATS", "cat"},
		{"transformers", "transform"},
		{"cat", "cat"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCountTerms(t *testing.T) {
	pool := intern.NewPool()
	counts := CountTerms("the cat chased cats\nand a dog", pool)

	// "cat" and "cats" stem to the same term.
	if got := counts[pool.Intern("cat")]; got != 2 {
		t.Errorf("count(cat): got %d, want 2", got)
	}
	if got := counts[pool.Intern("dog")]; got != 1 {
		t.Errorf("count(dog): got %d, want 1", got)
	}
}

func TestQueryTermsKeepOrderAndRepeats(t *testing.T) {
	pool := intern.NewPool()
	terms := QueryTerms("dog cat dog", pool)
	if len(terms) != 3 {
		t.Fatalf("got %d terms, want 3", len(terms))
	}
	if terms[0] != terms[2] {
		t.Error("repeated word produced different handles")
	}
	if terms[0] == terms[1] {
		t.Error("distinct words produced the same handle")
	}
}

func TestQueryAndDocumentAgree(t *testing.T) {
	pool := intern.NewPool()
	counts := CountTerms("Transformers are attention models", pool)
	terms := QueryTerms("TRANSFORMER", pool)
	if len(terms) != 1 {
		t.Fatalf("got %d terms", len(terms))
	}
	if _, ok := counts[terms[0]]; !ok {
		t.Error("query term does not match the document term it stems to")
	}
}
