package health

import (
	"context"
	"errors"
	"testing"

	"github.com/pathlight/careermatch/internal/domain"
)

type fakeCatalog struct{}

func (fakeCatalog) Sizes() map[domain.Domain]int {
	return map[domain.Domain]int{domain.Skills: 900, domain.Tasks: 880}
}

type fakeChecker struct{ err error }

func (f fakeChecker) HealthCheck(context.Context) error { return f.err }

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(fakeCatalog{}, fakeChecker{}, fakePinger{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Fatalf("expected healthy, got %s", report.Status)
	}
	if report.Checks["embedding"] != CheckOK || report.Checks["cache"] != CheckOK {
		t.Fatalf("unexpected checks: %v", report.Checks)
	}
	if report.CatalogSizes["skills"] != 900 {
		t.Fatalf("unexpected catalog sizes: %v", report.CatalogSizes)
	}
}

func TestCheck_DegradedOnEmbeddingFailure(t *testing.T) {
	svc := New(fakeCatalog{}, fakeChecker{err: errors.New("upstream down")}, nil)

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Fatalf("expected degraded, got %s", report.Status)
	}
	if report.Checks["embedding"] != CheckError {
		t.Fatalf("unexpected checks: %v", report.Checks)
	}
}

func TestCheck_NilComponentsSkipped(t *testing.T) {
	svc := New(fakeCatalog{}, nil, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Fatalf("expected healthy with no probes, got %s", report.Status)
	}
	if len(report.Checks) != 0 {
		t.Fatalf("expected no checks, got %v", report.Checks)
	}
}

func TestCheck_CacheFailureDegrades(t *testing.T) {
	svc := New(fakeCatalog{}, fakeChecker{}, fakePinger{err: errors.New("no route")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Fatalf("expected degraded, got %s", report.Status)
	}
	if report.Checks["cache"] != CheckError || report.Checks["embedding"] != CheckOK {
		t.Fatalf("unexpected checks: %v", report.Checks)
	}
}
