package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pathlight/careermatch/internal/domain"
	"github.com/pathlight/careermatch/internal/logger"
	explainuc "github.com/pathlight/careermatch/internal/usecase/explain"
	healthuc "github.com/pathlight/careermatch/internal/usecase/health"
	matchuc "github.com/pathlight/careermatch/internal/usecase/match"
)

type stubMatcher struct {
	gotReq matchuc.Request
	result domain.MatchResult
	err    error
}

func (s *stubMatcher) Match(_ context.Context, req matchuc.Request) (domain.MatchResult, error) {
	s.gotReq = req
	if s.err != nil {
		return domain.MatchResult{}, s.err
	}
	return s.result, nil
}

type stubExplainer struct {
	gotReq explainuc.Request
	text   string
}

func (s *stubExplainer) Explain(_ context.Context, req explainuc.Request) string {
	s.gotReq = req
	return s.text
}

type stubHealth struct {
	report healthuc.Report
}

func (s *stubHealth) Check(context.Context) healthuc.Report {
	return s.report
}

func newTestRouter(matcher Matcher, health HealthChecker) chi.Router {
	r := chi.NewRouter()
	NewServer(matcher, &stubExplainer{}, health).Register(r)
	return r
}

func postMatch(t *testing.T, r chi.Router, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/match", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validBody = `{
	"answers": {
		"skills": "organizing events and talking with people",
		"knowledge": "hospitality",
		"tasks": "front desk work",
		"occ": "steady schedule"
	},
	"preferences": ["tech", "creative"],
	"top_k": 10
}`

func TestHandleMatch(t *testing.T) {
	matcher := &stubMatcher{
		result: domain.MatchResult{
			Level:       "moderate (1+ match)",
			Preferences: []domain.Category{domain.CategoryTech, domain.CategoryCreative},
			Results: []domain.RankedMatch{
				{
					ID:            "occ-1",
					Title:         "Software Developer",
					RoleType:      domain.CategoryTech,
					MatchCount:    2,
					Domains:       []domain.Domain{domain.Skills, domain.Tasks},
					Scores:        []float64{0.5, 0.6},
					WeightedScore: 0.385,
					AvgScore:      0.55,
					PrefBoost:     0.10,
					FinalScore:    0.505,
				},
			},
		},
	}
	r := newTestRouter(matcher, &stubHealth{})

	w := postMatch(t, r, validBody)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Level       string   `json:"level"`
		Preferences []string `json:"preferences"`
		Results     []struct {
			ID         string   `json:"id"`
			RoleType   string   `json:"role_type"`
			MatchCount int      `json:"match_count"`
			Domains    []string `json:"domains"`
		} `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Level != "moderate (1+ match)" {
		t.Errorf("unexpected level %q", resp.Level)
	}
	if len(resp.Results) != 1 || resp.Results[0].ID != "occ-1" {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}
	if resp.Results[0].RoleType != "tech" || resp.Results[0].MatchCount != 2 {
		t.Errorf("unexpected result fields: %+v", resp.Results[0])
	}
	if len(resp.Results[0].Domains) != 2 || resp.Results[0].Domains[0] != "skills" {
		t.Errorf("unexpected domains: %v", resp.Results[0].Domains)
	}

	// Request decoded into the service types.
	if matcher.gotReq.Answers.Skills != "organizing events and talking with people" {
		t.Errorf("answers not passed through: %+v", matcher.gotReq.Answers)
	}
	if !matcher.gotReq.Preferences[domain.CategoryTech] {
		t.Errorf("preferences not passed through: %v", matcher.gotReq.Preferences)
	}
	if matcher.gotReq.TopK != 10 {
		t.Errorf("expected top_k 10, got %d", matcher.gotReq.TopK)
	}
}

func TestHandleMatch_InvalidBody(t *testing.T) {
	r := newTestRouter(&stubMatcher{}, &stubHealth{})

	w := postMatch(t, r, "{not json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	assertErrorCode(t, w, "bad_request")
}

func TestHandleMatch_UnknownPreference(t *testing.T) {
	r := newTestRouter(&stubMatcher{}, &stubHealth{})

	body := `{"answers": {"skills": "x"}, "preferences": ["astronaut"]}`
	w := postMatch(t, r, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	assertErrorCode(t, w, "validation_failed")
}

func TestHandleMatch_DomainErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"answers too short", domain.ErrAnswersTooShort, http.StatusBadRequest, "validation_failed"},
		{"dimension mismatch", domain.ErrDimensionMismatch, http.StatusBadRequest, "embedding_dim_mismatch"},
		{"provider error", fmt.Errorf("embed: %w", domain.ErrEmbeddingProviderError), http.StatusBadGateway, "embedding_provider_error"},
		{"unknown error", fmt.Errorf("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&stubMatcher{err: tc.err}, &stubHealth{})

			w := postMatch(t, r, validBody)
			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tc.wantStatus, w.Code, w.Body.String())
			}
			assertErrorCode(t, w, tc.wantCode)
		})
	}
}

func TestHandleExplain(t *testing.T) {
	explainer := &stubExplainer{text: "This is an excellent match for you!"}
	r := chi.NewRouter()
	NewServer(&stubMatcher{}, explainer, &stubHealth{}).Register(r)

	body := `{
		"title": "Software Developer",
		"domains": ["skills", "tasks"],
		"answers": {
			"skills": "building small tools for friends",
			"tasks": "automating boring work"
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/explain", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Explanation != "This is an excellent match for you!" {
		t.Errorf("unexpected explanation %q", resp.Explanation)
	}

	if explainer.gotReq.Title != "Software Developer" {
		t.Errorf("title not passed through: %q", explainer.gotReq.Title)
	}
	if len(explainer.gotReq.Domains) != 2 || explainer.gotReq.Domains[0] != domain.Skills {
		t.Errorf("domains not passed through: %v", explainer.gotReq.Domains)
	}
	if explainer.gotReq.Answers.Tasks != "automating boring work" {
		t.Errorf("answers not passed through: %+v", explainer.gotReq.Answers)
	}
}

func TestHandleExplain_MissingTitle(t *testing.T) {
	r := newTestRouter(&stubMatcher{}, &stubHealth{})

	req := httptest.NewRequest(http.MethodPost, "/v1/explain",
		strings.NewReader(`{"domains": ["skills"]}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	assertErrorCode(t, w, "validation_failed")
}

func TestHandleExplain_UnknownDomain(t *testing.T) {
	r := newTestRouter(&stubMatcher{}, &stubHealth{})

	req := httptest.NewRequest(http.MethodPost, "/v1/explain",
		strings.NewReader(`{"title": "Software Developer", "domains": ["vibes"]}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	assertErrorCode(t, w, "validation_failed")
}

// Handlers must log through the per-request logger installed in the request
// context, so that log lines carry the request-scoped fields.
func TestHandleDomainError_UsesRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	reqLogger := zap.New(core).With(zap.String("request_id", "req-42"))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(logger.ContextWithLogger(req.Context(), reqLogger)))
		})
	})
	NewServer(&stubMatcher{err: fmt.Errorf("boom")}, &stubExplainer{}, &stubHealth{}).Register(r)

	w := postMatch(t, r, validBody)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	entries := logs.FilterMessage("unhandled domain error").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-42" {
		t.Errorf("expected request-scoped field, got %v", fields)
	}
}

func TestHandleHealth(t *testing.T) {
	health := &stubHealth{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{
			"embedding": healthuc.CheckError,
		},
		CatalogSizes: map[string]int{"skills": 900},
	}}
	r := newTestRouter(&stubMatcher{}, health)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Status  string            `json:"status"`
		Checks  map[string]string `json:"checks"`
		Catalog map[string]int    `json:"catalog"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "degraded" {
		t.Errorf("expected degraded, got %q", resp.Status)
	}
	if resp.Checks["embedding"] != "error" {
		t.Errorf("unexpected checks: %v", resp.Checks)
	}
	if resp.Catalog["skills"] != 900 {
		t.Errorf("unexpected catalog sizes: %v", resp.Catalog)
	}
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != want {
		t.Errorf("expected error code %q, got %q (%s)", want, resp.Code, resp.Message)
	}
}
