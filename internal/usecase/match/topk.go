package match

import (
	"fmt"
	"sort"

	"github.com/pathlight/careermatch/internal/catalog"
	"github.com/pathlight/careermatch/internal/domain"
)

// scoredEntity is one row that survived a domain's threshold filter.
type scoredEntity struct {
	ID    string
	Title string
	Score float64
}

// selectTopK scans every row of the index, keeps rows scoring at or above
// threshold, and returns the k best sorted by descending score. Ties keep
// original row order. Brute force is deliberate: catalogs are small enough
// that a full scan is both exact and fast.
func selectTopK(query []float32, idx *catalog.Index, k int, threshold float64) ([]scoredEntity, error) {
	m := idx.Matrix
	if len(query) != m.Cols {
		return nil, fmt.Errorf("%w: domain %s: query has %d dims, matrix has %d cols",
			domain.ErrDimensionMismatch, idx.Domain, len(query), m.Cols)
	}

	candidates := make([]scoredEntity, 0, k)
	for r := 0; r < m.Rows; r++ {
		score := dotProduct(query, m, r)
		if score < threshold {
			continue
		}
		candidates = append(candidates, scoredEntity{
			ID:    idx.Entities[r].ID,
			Title: idx.Entities[r].Title,
			Score: score,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates, nil
}
