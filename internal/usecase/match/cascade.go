package match

import "github.com/pathlight/careermatch/internal/domain"

// cascadeLevel is one threshold-and-minimum-match profile. Levels are tried
// in order until one yields enough candidates.
type cascadeLevel struct {
	Name       string
	Thresholds map[domain.Domain]float64
	MinMatches int
}

// minCandidates is the candidate count below which the cascade relaxes to
// the next level. The last level's result is returned regardless of size;
// a small or empty result set is a valid outcome, not an error.
const minCandidates = 5

var cascadeLevels = []cascadeLevel{
	{
		Name: "strict (2+ matches)",
		Thresholds: map[domain.Domain]float64{
			domain.Skills:    0.42,
			domain.Knowledge: 0.40,
			domain.Tasks:     0.40,
			domain.Occ:       0.38,
		},
		MinMatches: 2,
	},
	{
		Name: "moderate (1+ match)",
		Thresholds: map[domain.Domain]float64{
			domain.Skills:    0.38,
			domain.Knowledge: 0.36,
			domain.Tasks:     0.36,
			domain.Occ:       0.34,
		},
		MinMatches: 1,
	},
	{
		Name: "exploratory (1+ match)",
		Thresholds: map[domain.Domain]float64{
			domain.Skills:    0.35,
			domain.Knowledge: 0.33,
			domain.Tasks:     0.33,
			domain.Occ:       0.31,
		},
		MinMatches: 1,
	},
}
