// Package match implements the multi-domain occupation matching engine:
// per-domain thresholded top-k similarity search, cross-domain aggregation
// with adaptive threshold relaxation, and preference-aware final ranking.
package match

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pathlight/careermatch/internal/domain"
	"github.com/pathlight/careermatch/internal/metrics"
)

const (
	// minAnswersLen is the smallest combined answer length worth embedding.
	minAnswersLen = 20

	minTopK     = 5
	maxTopK     = 50
	defaultTopK = 20
)

// Request is one user's matching query.
type Request struct {
	Answers     domain.AnswerSet
	Preferences domain.PreferenceSet
	// TopK is the per-domain candidate cap, clamped to [5, 50].
	TopK int
}

// Service executes matching queries against the shared immutable catalog.
// It holds no per-request state, so concurrent Match calls need no locking.
type Service struct {
	catalog CatalogReader
	embed   Embedder
	logger  *zap.Logger
	topN    int
}

// New creates a match service.
func New(catalog CatalogReader, embed Embedder, logger *zap.Logger) *Service {
	return &Service{catalog: catalog, embed: embed, logger: logger}
}

// WithFinalTopN caps the ranked result list; 0 disables the cap.
func (s *Service) WithFinalTopN(n int) *Service {
	s.topN = n
	return s
}

// Match embeds the answers, runs the threshold cascade, and returns the
// ranked result list. An empty list is a valid outcome, not an error.
func (s *Service) Match(ctx context.Context, req Request) (domain.MatchResult, error) {
	start := time.Now()

	if req.Answers.TotalLen() < minAnswersLen {
		return domain.MatchResult{}, fmt.Errorf(
			"%w: combined answers must be at least %d characters",
			domain.ErrAnswersTooShort, minAnswersLen)
	}

	topK := req.TopK
	if topK == 0 {
		topK = defaultTopK
	}
	if topK < minTopK {
		topK = minTopK
	}
	if topK > maxTopK {
		topK = maxTopK
	}

	vecs, err := s.embedAnswers(ctx, req.Answers)
	if err != nil {
		return domain.MatchResult{}, err
	}

	// Each level re-runs the full four-domain search from scratch and
	// re-applies the min-match filter. The last level's result stands
	// however small.
	var (
		cands []*candidate
		level cascadeLevel
	)
	for _, level = range cascadeLevels {
		perDomain, err := s.runLevel(ctx, vecs, level, topK)
		if err != nil {
			return domain.MatchResult{}, err
		}
		cands = aggregate(perDomain, level.MinMatches)
		if len(cands) >= minCandidates {
			break
		}
	}

	ranked := rank(cands, req.Preferences, req.Answers)
	if s.topN > 0 && len(ranked) > s.topN {
		ranked = ranked[:s.topN]
	}

	elapsed := time.Since(start)
	metrics.SearchDuration.Observe(elapsed.Seconds())
	metrics.SearchCascadeLevelTotal.WithLabelValues(level.Name).Inc()
	metrics.SearchResultsReturned.Observe(float64(len(ranked)))

	s.logger.Info("match completed",
		zap.String("level", level.Name),
		zap.Int("candidates", len(cands)),
		zap.Int("results", len(ranked)),
		zap.Int("top_k", topK),
		zap.Duration("duration", elapsed),
	)

	return domain.MatchResult{
		Level:       level.Name,
		Preferences: req.Preferences.Selected(),
		Results:     ranked,
	}, nil
}

// embedAnswers vectorizes one answer per domain via the external embedder.
func (s *Service) embedAnswers(ctx context.Context, answers domain.AnswerSet) (domain.QueryVectors, error) {
	vecs := make(domain.QueryVectors, 4)
	for _, d := range domain.Order() {
		result, err := s.embed.Embed(ctx, answers.ByDomain(d))
		if err != nil {
			return nil, fmt.Errorf("embed %s answer: %w", d, err)
		}
		vecs[d] = result.Embedding
	}
	return vecs, nil
}

// runLevel scans all four domains concurrently at one cascade level. The
// scans are order-independent; their results merge deterministically later.
// Any domain failure abandons the whole level — partial per-domain results
// are never masked.
func (s *Service) runLevel(
	ctx context.Context, vecs domain.QueryVectors, level cascadeLevel, topK int,
) (map[domain.Domain][]scoredEntity, error) {
	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		firstErr  error
		perDomain = make(map[domain.Domain][]scoredEntity, 4)
	)

	for _, d := range domain.Order() {
		idx, ok := s.catalog.Index(d)
		if !ok {
			return nil, fmt.Errorf("catalog has no index for domain %s", d)
		}

		wg.Add(1)
		go func(d domain.Domain) {
			defer wg.Done()
			hits, err := selectTopK(vecs[d], idx, topK, level.Thresholds[d])
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			perDomain[d] = hits
		}(d)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return perDomain, nil
}
