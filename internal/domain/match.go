package domain

// RankedMatch is one occupation in the final ranked result list.
type RankedMatch struct {
	ID       string
	Title    string
	RoleType Category

	// MatchCount is the number of domains in which the occupation
	// survived its threshold-and-top-k filter.
	MatchCount int
	// Domains lists those domains in canonical iteration order.
	Domains []Domain
	// Scores holds the per-domain raw similarities, parallel to Domains.
	Scores []float64

	WeightedScore  float64
	AvgScore       float64
	PrefBoost      float64
	AppliedBoost   float64
	DiversityScore int
	FinalScore     float64
}

// MatchResult is the full outcome of one search call, handed to the
// presentation layer.
type MatchResult struct {
	// Level names the cascade level that produced the results,
	// e.g. "strict (2+ matches)".
	Level string
	// Preferences echoes the preference set that was applied.
	Preferences []Category
	Results     []RankedMatch
}
