package health

import (
	"context"

	"github.com/pathlight/careermatch/internal/domain"
)

// CachePinger checks embedding cache connectivity.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker verifies embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// CatalogReporter exposes catalog shape for the health report.
type CatalogReporter interface {
	Sizes() map[domain.Domain]int
}
