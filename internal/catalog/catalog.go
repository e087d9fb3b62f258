// Package catalog loads and serves the immutable occupation catalog: one
// vector matrix plus aligned metadata per semantic domain.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pathlight/careermatch/internal/domain"
)

// Index pairs one matrix with its aligned entity metadata for a single
// domain. metadata[r] describes matrix row r.
type Index struct {
	Domain   domain.Domain
	Matrix   Matrix
	Entities []domain.Entity
}

// Catalog is the process-wide set of four domain indexes. It is built once
// at startup and read-only thereafter, so concurrent searches share it
// without locking.
type Catalog struct {
	indexes map[domain.Domain]*Index
}

// NewIndex builds an index and validates row alignment.
func NewIndex(d domain.Domain, m Matrix, entities []domain.Entity) (*Index, error) {
	if len(entities) != m.Rows {
		return nil, fmt.Errorf("%w: domain %s: %d metadata records for %d matrix rows",
			domain.ErrMalformedMetadata, d, len(entities), m.Rows)
	}
	return &Index{Domain: d, Matrix: m, Entities: entities}, nil
}

// Load reads all four domain indexes from dir. Files follow the
// "<domain>.npy" / "<domain>_meta.json" convention. Any failure aborts the
// whole load: the process must not serve searches with a partial catalog.
func Load(dir string) (*Catalog, error) {
	indexes := make(map[domain.Domain]*Index, 4)

	for _, d := range domain.Order() {
		idx, err := loadIndex(dir, d)
		if err != nil {
			return nil, fmt.Errorf("load domain %s: %w", d, err)
		}
		indexes[d] = idx
	}

	return &Catalog{indexes: indexes}, nil
}

func loadIndex(dir string, d domain.Domain) (*Index, error) {
	matrixPath := filepath.Join(dir, string(d)+".npy")
	metaPath := filepath.Join(dir, string(d)+"_meta.json")

	matrixBytes, err := os.ReadFile(filepath.Clean(matrixPath))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", matrixPath, err)
	}
	m, err := ParseMatrix(matrixBytes)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", matrixPath, err)
	}

	metaBytes, err := os.ReadFile(filepath.Clean(metaPath))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", metaPath, err)
	}
	entities, err := ParseMetadata(metaBytes)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", metaPath, err)
	}

	return NewIndex(d, m, entities)
}

// New builds a catalog from pre-constructed indexes (tests, seeding).
func New(indexes ...*Index) (*Catalog, error) {
	byDomain := make(map[domain.Domain]*Index, len(indexes))
	for _, idx := range indexes {
		byDomain[idx.Domain] = idx
	}
	for _, d := range domain.Order() {
		if _, ok := byDomain[d]; !ok {
			return nil, fmt.Errorf("missing index for domain %s", d)
		}
	}
	return &Catalog{indexes: byDomain}, nil
}

// Index returns the index for a domain.
func (c *Catalog) Index(d domain.Domain) (*Index, bool) {
	idx, ok := c.indexes[d]
	return idx, ok
}

// Dimensions returns the vector dimensionality of a domain's matrix.
func (c *Catalog) Dimensions(d domain.Domain) int {
	if idx, ok := c.indexes[d]; ok {
		return idx.Matrix.Cols
	}
	return 0
}

// Sizes returns the row count per domain, for health reporting.
func (c *Catalog) Sizes() map[domain.Domain]int {
	sizes := make(map[domain.Domain]int, len(c.indexes))
	for d, idx := range c.indexes {
		sizes[d] = idx.Matrix.Rows
	}
	return sizes
}
