package match

import "github.com/pathlight/careermatch/internal/domain"

// Domain weights for the cross-domain weighted score. They sum to 1.0.
var domainWeights = map[domain.Domain]float64{
	domain.Skills:    0.35,
	domain.Tasks:     0.35,
	domain.Knowledge: 0.20,
	domain.Occ:       0.10,
}

// defaultDomainWeight applies to a domain name missing from the table.
// Defensive only: the four known domains all have explicit weights.
const defaultDomainWeight = 0.25

// candidate accumulates one occupation's hits across domains during
// aggregation. It lives only for the duration of one search call.
type candidate struct {
	ID            string
	Title         string
	MatchCount    int
	Domains       []domain.Domain
	Scores        []float64
	WeightedScore float64
}

// aggregate merges per-domain top-k lists into candidates keyed by entity id
// and filters them to minMatches. Domains are folded in canonical order so
// Domains/Scores ordering is deterministic for identical input; the
// resulting candidate set itself is order-independent.
func aggregate(perDomain map[domain.Domain][]scoredEntity, minMatches int) []*candidate {
	byID := make(map[string]*candidate)
	var order []string

	for _, d := range domain.Order() {
		w, ok := domainWeights[d]
		if !ok {
			w = defaultDomainWeight
		}

		for _, hit := range perDomain[d] {
			entry, ok := byID[hit.ID]
			if !ok {
				entry = &candidate{ID: hit.ID, Title: hit.Title}
				byID[hit.ID] = entry
				order = append(order, hit.ID)
			}
			entry.MatchCount++
			entry.Domains = append(entry.Domains, d)
			entry.Scores = append(entry.Scores, hit.Score)
			entry.WeightedScore += w * hit.Score
		}
	}

	out := make([]*candidate, 0, len(byID))
	for _, id := range order {
		if c := byID[id]; c.MatchCount >= minMatches {
			out = append(out, c)
		}
	}
	return out
}
