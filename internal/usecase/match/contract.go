package match

import (
	"context"

	"github.com/pathlight/careermatch/internal/catalog"
	"github.com/pathlight/careermatch/internal/domain"
)

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// CatalogReader serves the immutable domain indexes.
type CatalogReader interface {
	Index(d domain.Domain) (*catalog.Index, bool)
}
