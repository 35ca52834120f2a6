package intern

import (
	"fmt"
	"sync"
	"testing"
)

func TestInternIdempotent(t *testing.T) {
	p := NewPool()
	a := p.Intern("cat")
	b := p.Intern("cat")
	if a != b {
		t.Errorf("intern not idempotent: got %d and %d", a, b)
	}
	if got := p.Size(); got != 1 {
		t.Errorf("size: got %d, want 1", got)
	}
}

func TestInternDistinctStrings(t *testing.T) {
	p := NewPool()
	seen := make(map[Term]string)
	for _, s := range []string{"cat", "dog", "catalog", "", "Cat"} {
		id := p.Intern(s)
		if prev, ok := seen[id]; ok {
			t.Errorf("handle %d issued for both %q and %q", id, prev, s)
		}
		seen[id] = s
	}
	if got := p.Size(); got != 5 {
		t.Errorf("size: got %d, want 5", got)
	}
}

func TestResolveRoundTrip(t *testing.T) {
	p := NewPool()
	words := []string{"alpha", "beta", "gamma"}
	ids := make([]Term, len(words))
	for i, w := range words {
		ids[i] = p.Intern(w)
	}
	for i, id := range ids {
		got, err := p.Resolve(id)
		if err != nil {
			t.Fatalf("resolve(%d): %v", id, err)
		}
		if got != words[i] {
			t.Errorf("resolve(%d): got %q, want %q", id, got, words[i])
		}
	}
}

func TestResolveUnknownHandle(t *testing.T) {
	p := NewPool()
	p.Intern("only")
	if _, err := p.Resolve(Term(99)); err == nil {
		t.Error("expected error for handle never issued")
	}
}

func TestInternConcurrent(t *testing.T) {
	p := NewPool()
	const goroutines = 16
	const words = 50

	results := make([][]Term, goroutines)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			ids := make([]Term, words)
			for i := 0; i < words; i++ {
				ids[i] = p.Intern(fmt.Sprintf("word-%d", i))
			}
			results[g] = ids
		}(g)
	}
	wg.Wait()

	if got := p.Size(); got != words {
		t.Fatalf("size: got %d, want %d", got, words)
	}
	for g := 1; g < goroutines; g++ {
		for i := 0; i < words; i++ {
			if results[g][i] != results[0][i] {
				t.Fatalf("goroutine %d got handle %d for word %d, goroutine 0 got %d",
					g, results[g][i], i, results[0][i])
			}
		}
	}
}
