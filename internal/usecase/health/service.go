// Package health aggregates component health checks.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status       Status
	Checks       map[string]CheckResult
	CatalogSizes map[string]int
}

// Service coordinates health checks.
type Service struct {
	catalog   CatalogReporter
	embedding EmbeddingChecker
	cache     CachePinger
}

// New creates a Service. embedding and cache can be nil.
func New(catalog CatalogReporter, embedding EmbeddingChecker, cache CachePinger) *Service {
	return &Service{catalog: catalog, embedding: embedding, cache: cache}
}

// Check runs health checks against all components. The catalog is loaded
// and validated at startup, so it is reported by size rather than probed.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
		} else {
			checks["cache"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	sizes := make(map[string]int)
	for d, n := range s.catalog.Sizes() {
		sizes[string(d)] = n
	}

	return Report{Status: status, Checks: checks, CatalogSizes: sizes}
}
