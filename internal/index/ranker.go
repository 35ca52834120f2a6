package index

import (
	"math"
	"sort"

	"github.com/Player01osu/paper-engine/internal/intern"
)

// scoreScale converts fractional TF-IDF products into integer scores before
// truncation, so tiny IDF differences still separate documents.
const scoreScale = 100000

// Result is one ranked document.
type Result struct {
	Score uint64 `json:"score"`
	Path  string `json:"path"`
	Title string `json:"title"`
}

// Rank scores every document against the query terms and returns matches in
// descending order. Each query term contributes
// floor(scoreScale * idf * tf) to the documents containing it, with
// idf = log10((N+1)/(df+1)); a term repeated in the query contributes once
// per repetition. The accumulated score is divided by the query length using
// integer division. Documents containing none of the query terms are absent
// from the result.
//
// Ties sort by the full (score, path, title) tuple, all descending. Term
// frequencies carry no document-length normalization, so longer documents
// are favored; changing that would diverge from every existing snapshot's
// scores.
func (s *Store) Rank(query []intern.Term) []Result {
	if len(query) == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.documents)
	accumulated := make(map[string]uint64)
	for _, term := range query {
		df := 0
		for _, doc := range s.documents {
			if _, ok := doc.TermFreq[term]; ok {
				df++
			}
		}
		idf := math.Log10(float64(total+1) / float64(df+1))
		for _, doc := range s.documents {
			freq, ok := doc.TermFreq[term]
			if !ok {
				continue
			}
			accumulated[doc.Title] += uint64(scoreScale * idf * freq)
		}
	}

	results := make([]Result, 0, len(accumulated))
	for title, score := range accumulated {
		results = append(results, Result{
			Score: score / uint64(len(query)),
			Path:  s.documents[title].Path,
			Title: title,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Path != b.Path {
			return a.Path > b.Path
		}
		return a.Title > b.Title
	})
	return results
}
