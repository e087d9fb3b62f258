// Package http provides the hand-written chi transport for the matching API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pathlight/careermatch/internal/domain"
	"github.com/pathlight/careermatch/internal/logger"
	explainuc "github.com/pathlight/careermatch/internal/usecase/explain"
	healthuc "github.com/pathlight/careermatch/internal/usecase/health"
	matchuc "github.com/pathlight/careermatch/internal/usecase/match"
)

// Error codes returned in JSON error responses.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeDimMismatch      = "embedding_dim_mismatch"
	codeEmbeddingError   = "embedding_provider_error"
	codeInternal         = "internal_error"
)

// Matcher executes matching queries.
type Matcher interface {
	Match(ctx context.Context, req matchuc.Request) (domain.MatchResult, error)
}

// Explainer generates explanation text for a matched career.
type Explainer interface {
	Explain(ctx context.Context, req explainuc.Request) string
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the matching engine over HTTP. Handlers log through the
// per-request logger installed by the wide-event middleware.
type Server struct {
	matcher       Matcher
	explainer     Explainer
	health        HealthChecker
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(matcher Matcher, explainer Explainer, health HealthChecker) *Server {
	s := &Server{
		matcher:   matcher,
		explainer: explainer,
		health:    health,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrAnswersTooShort, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrDimensionMismatch, http.StatusBadRequest, codeDimMismatch),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingError),
	}
	return s
}

// Register attaches all routes to the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/v1/match", s.handleMatch)
	r.Post("/v1/explain", s.handleExplain)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
}

// matchRequest is the POST /v1/match body.
type matchRequest struct {
	Answers struct {
		Skills    string `json:"skills"`
		Knowledge string `json:"knowledge"`
		Tasks     string `json:"tasks"`
		Occ       string `json:"occ"`
	} `json:"answers"`
	Preferences []string `json:"preferences"`
	TopK        int      `json:"top_k"`
}

// matchResponse is the POST /v1/match reply.
type matchResponse struct {
	Level       string        `json:"level"`
	Preferences []string      `json:"preferences"`
	Results     []rankedMatch `json:"results"`
}

type rankedMatch struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	RoleType       string    `json:"role_type"`
	MatchCount     int       `json:"match_count"`
	Domains        []string  `json:"domains"`
	Scores         []float64 `json:"scores"`
	WeightedScore  float64   `json:"weighted_score"`
	AvgScore       float64   `json:"avg_score"`
	PrefBoost      float64   `json:"pref_boost"`
	AppliedBoost   float64   `json:"applied_boost"`
	DiversityScore int       `json:"diversity_score"`
	FinalScore     float64   `json:"final_score"`
}

// handleMatch handles POST /v1/match.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	prefs := make(domain.PreferenceSet, len(req.Preferences))
	for _, p := range req.Preferences {
		c, err := domain.ParseCategory(p)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return
		}
		prefs[c] = true
	}

	result, err := s.matcher.Match(r.Context(), matchuc.Request{
		Answers: domain.AnswerSet{
			Skills:    req.Answers.Skills,
			Knowledge: req.Answers.Knowledge,
			Tasks:     req.Answers.Tasks,
			Occ:       req.Answers.Occ,
		},
		Preferences: prefs,
		TopK:        req.TopK,
	})
	if err != nil {
		s.handleDomainError(r, w, err)
		return
	}

	writeJSON(w, http.StatusOK, matchResultToResponse(result))
}

// explainRequest is the POST /v1/explain body.
type explainRequest struct {
	Title   string   `json:"title"`
	Domains []string `json:"domains"`
	Answers struct {
		Skills    string `json:"skills"`
		Knowledge string `json:"knowledge"`
		Tasks     string `json:"tasks"`
		Occ       string `json:"occ"`
	} `json:"answers"`
}

type explainResponse struct {
	Explanation string `json:"explanation"`
}

// handleExplain handles POST /v1/explain.
func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	var req explainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "title is required")
		return
	}

	domains := make([]domain.Domain, len(req.Domains))
	for i, ds := range req.Domains {
		d, err := domain.ParseDomain(ds)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return
		}
		domains[i] = d
	}

	text := s.explainer.Explain(r.Context(), explainuc.Request{
		Title:   req.Title,
		Domains: domains,
		Answers: domain.AnswerSet{
			Skills:    req.Answers.Skills,
			Knowledge: req.Answers.Knowledge,
			Tasks:     req.Answers.Tasks,
			Occ:       req.Answers.Occ,
		},
	})

	writeJSON(w, http.StatusOK, explainResponse{Explanation: text})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  report.Status,
		"checks":  report.Checks,
		"catalog": report.CatalogSizes,
	})
}

func matchResultToResponse(result domain.MatchResult) matchResponse {
	prefs := make([]string, len(result.Preferences))
	for i, c := range result.Preferences {
		prefs[i] = string(c)
	}

	results := make([]rankedMatch, len(result.Results))
	for i, m := range result.Results {
		domains := make([]string, len(m.Domains))
		for j, d := range m.Domains {
			domains[j] = string(d)
		}
		results[i] = rankedMatch{
			ID:             m.ID,
			Title:          m.Title,
			RoleType:       string(m.RoleType),
			MatchCount:     m.MatchCount,
			Domains:        domains,
			Scores:         m.Scores,
			WeightedScore:  m.WeightedScore,
			AvgScore:       m.AvgScore,
			PrefBoost:      m.PrefBoost,
			AppliedBoost:   m.AppliedBoost,
			DiversityScore: m.DiversityScore,
			FinalScore:     m.FinalScore,
		}
	}

	return matchResponse{
		Level:       result.Level,
		Preferences: prefs,
		Results:     results,
	}
}

// handleDomainError maps domain errors to HTTP responses via the handler table.
func (s *Server) handleDomainError(r *http.Request, w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	logger.FromContext(r.Context()).Error("unhandled domain error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}

// sentinelHandler builds an errorHandler matching a sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
