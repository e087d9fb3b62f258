package match

import (
	"math"
	"sort"

	"github.com/pathlight/careermatch/internal/domain"
)

const (
	// diversityWeight converts a novel-word count into a score term.
	diversityWeight = 0.01
	// finalScoreEpsilon is the band within which two final scores count as
	// tied, deferring to raw average similarity. It keeps a small boost or
	// diversity delta from overturning a clearly stronger similarity result.
	finalScoreEpsilon = 0.01
)

// rank attaches boosts, diversity, and the final score to each candidate and
// sorts them. Diversity is computed over candidates in aggregation order,
// before sorting, so it favors candidates that surfaced first.
func rank(cands []*candidate, prefs domain.PreferenceSet, answers domain.AnswerSet) []domain.RankedMatch {
	titles := make([]string, len(cands))
	for i, c := range cands {
		titles[i] = c.Title
	}
	diversity := diversityScores(titles)

	ranked := make([]domain.RankedMatch, len(cands))
	for i, c := range cands {
		var sum float64
		for _, s := range c.Scores {
			sum += s
		}
		avg := sum / float64(len(c.Scores))

		category := Classify(c.Title)
		pref := preferenceBoost(category, prefs)
		applied := orientationBoost(c.Title, answers)
		final := c.WeightedScore + pref + applied + diversityWeight*float64(diversity[i])

		ranked[i] = domain.RankedMatch{
			ID:             c.ID,
			Title:          c.Title,
			RoleType:       category,
			MatchCount:     c.MatchCount,
			Domains:        c.Domains,
			Scores:         c.Scores,
			WeightedScore:  c.WeightedScore,
			AvgScore:       avg,
			PrefBoost:      pref,
			AppliedBoost:   applied,
			DiversityScore: diversity[i],
			FinalScore:     final,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.MatchCount != b.MatchCount {
			return a.MatchCount > b.MatchCount
		}
		if math.Abs(a.FinalScore-b.FinalScore) > finalScoreEpsilon {
			return a.FinalScore > b.FinalScore
		}
		return a.AvgScore > b.AvgScore
	})

	return ranked
}
