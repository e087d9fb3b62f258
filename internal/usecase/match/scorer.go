package match

import "github.com/pathlight/careermatch/internal/catalog"

// dotProduct computes the dot product between the query and matrix row r.
// All vectors are unit-normalized upstream, so this equals cosine
// similarity. Callers must have verified len(query) == m.Cols; checking here
// per row would be wasted work.
func dotProduct(query []float32, m catalog.Matrix, r int) float64 {
	row := m.Row(r)
	var dot float64
	for c := range row {
		dot += float64(query[c]) * float64(row[c])
	}
	return dot
}
