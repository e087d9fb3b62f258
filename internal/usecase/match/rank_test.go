package match

import (
	"math"
	"testing"

	"github.com/pathlight/careermatch/internal/domain"
)

var neutralAnswers = domain.AnswerSet{
	Skills:    "talking with people",
	Knowledge: "hospitality",
	Tasks:     "organizing events",
	Occ:       "front desk",
}

func TestRank_FinalScore(t *testing.T) {
	cands := []*candidate{
		{
			ID:            "occ-1",
			Title:         "Software Developer",
			MatchCount:    2,
			Domains:       []domain.Domain{domain.Skills, domain.Tasks},
			Scores:        []float64{0.50, 0.60},
			WeightedScore: 0.385,
		},
	}
	prefs := domain.NewPreferenceSet(domain.CategoryTech)
	answers := domain.AnswerSet{Skills: "I build apps and write code", Knowledge: "", Tasks: "", Occ: ""}

	ranked := rank(cands, prefs, answers)
	if len(ranked) != 1 {
		t.Fatalf("expected 1 result, got %d", len(ranked))
	}

	r := ranked[0]
	if r.RoleType != domain.CategoryTech {
		t.Fatalf("expected tech role type, got %s", r.RoleType)
	}
	if math.Abs(r.AvgScore-0.55) > 1e-9 {
		t.Fatalf("expected avg 0.55, got %f", r.AvgScore)
	}
	if r.PrefBoost != prefBoostMatch {
		t.Fatalf("expected pref boost %f, got %f", prefBoostMatch, r.PrefBoost)
	}
	if r.AppliedBoost != appliedMatchBoost {
		t.Fatalf("expected applied boost %f, got %f", appliedMatchBoost, r.AppliedBoost)
	}
	if r.DiversityScore != 2 {
		t.Fatalf("expected diversity 2, got %d", r.DiversityScore)
	}

	want := 0.385 + prefBoostMatch + appliedMatchBoost + diversityWeight*2
	if math.Abs(r.FinalScore-want) > 1e-9 {
		t.Fatalf("expected final score %f, got %f", want, r.FinalScore)
	}
}

func TestRank_MatchCountDominates(t *testing.T) {
	cands := []*candidate{
		{ID: "one", Title: "Alpha Beta", MatchCount: 1, Scores: []float64{0.90}, WeightedScore: 0.90},
		{ID: "two", Title: "Gamma Delta", MatchCount: 2, Scores: []float64{0.40, 0.40}, WeightedScore: 0.28},
	}

	ranked := rank(cands, domain.NewPreferenceSet(), neutralAnswers)
	if ranked[0].ID != "two" {
		t.Fatalf("expected the 2-domain candidate first, got %s", ranked[0].ID)
	}
}

// Final scores within epsilon of each other count as tied and fall back to
// raw average similarity.
func TestRank_EpsilonTieBreak(t *testing.T) {
	// Both titles contribute 2 novel words, so diversity cancels out.
	cands := []*candidate{
		{ID: "lower-final", Title: "Alpha Beta", MatchCount: 1, Scores: []float64{0.60}, WeightedScore: 0.500},
		{ID: "higher-final", Title: "Gamma Delta", MatchCount: 1, Scores: []float64{0.55}, WeightedScore: 0.505},
	}

	ranked := rank(cands, domain.NewPreferenceSet(), neutralAnswers)
	// Final scores differ by 0.005, inside the tie band; the higher average
	// similarity wins despite the lower final score.
	if ranked[0].ID != "lower-final" {
		t.Fatalf("expected avg-similarity tie-break, got %s first", ranked[0].ID)
	}
}

func TestRank_FinalScoreOutsideEpsilon(t *testing.T) {
	cands := []*candidate{
		{ID: "weak", Title: "Alpha Beta", MatchCount: 1, Scores: []float64{0.60}, WeightedScore: 0.50},
		{ID: "strong", Title: "Gamma Delta", MatchCount: 1, Scores: []float64{0.55}, WeightedScore: 0.55},
	}

	ranked := rank(cands, domain.NewPreferenceSet(), neutralAnswers)
	if ranked[0].ID != "strong" {
		t.Fatalf("expected the clearly higher final score first, got %s", ranked[0].ID)
	}
}

func TestRank_DiversityComputedBeforeSorting(t *testing.T) {
	// Aggregation order: duplicate-wordy title first. After sorting the
	// second candidate may rank first, but its diversity was charged
	// against words already seen in aggregation order.
	cands := []*candidate{
		{ID: "first", Title: "Data Analyst", MatchCount: 1, Scores: []float64{0.40}, WeightedScore: 0.14},
		{ID: "second", Title: "Data Scientist", MatchCount: 1, Scores: []float64{0.90}, WeightedScore: 0.315},
	}

	ranked := rank(cands, domain.NewPreferenceSet(), neutralAnswers)
	byID := make(map[string]domain.RankedMatch)
	for _, r := range ranked {
		byID[r.ID] = r
	}
	if byID["first"].DiversityScore != 2 {
		t.Fatalf("expected first candidate diversity 2, got %d", byID["first"].DiversityScore)
	}
	if byID["second"].DiversityScore != 1 {
		t.Fatalf("expected second candidate diversity 1, got %d", byID["second"].DiversityScore)
	}
	if ranked[0].ID != "second" {
		t.Fatalf("expected higher-scoring candidate first, got %s", ranked[0].ID)
	}
}
