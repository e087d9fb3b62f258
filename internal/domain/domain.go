package domain

import "fmt"

// Domain is one of the four semantic facets an occupation is scored on.
type Domain string

const (
	// Skills covers abilities and aptitudes.
	Skills Domain = "skills"
	// Knowledge covers subject-matter background.
	Knowledge Domain = "knowledge"
	// Tasks covers day-to-day work activities.
	Tasks Domain = "tasks"
	// Occ covers occupational work style.
	Occ Domain = "occ"
)

// Order returns the canonical domain iteration order. Aggregation output
// ordering depends on it, so it must stay fixed.
func Order() [4]Domain {
	return [4]Domain{Skills, Knowledge, Tasks, Occ}
}

// ParseDomain validates a domain string from the API.
func ParseDomain(s string) (Domain, error) {
	for _, d := range Order() {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown domain %q", s)
}

// Label returns the human-readable domain name for presentation.
func (d Domain) Label() string {
	switch d {
	case Skills:
		return "Skills"
	case Knowledge:
		return "Knowledge"
	case Tasks:
		return "Tasks"
	case Occ:
		return "Work Style"
	default:
		return string(d)
	}
}

// Entity is an immutable catalog record: one occupation with a stable id.
// The same id may appear in up to four domain matrices at different rows.
type Entity struct {
	ID    string
	Title string
}

// AnswerSet holds the user's free-text answers, one per domain.
type AnswerSet struct {
	Skills    string
	Knowledge string
	Tasks     string
	Occ       string
}

// ByDomain returns the answer text for the given domain.
func (a AnswerSet) ByDomain(d Domain) string {
	switch d {
	case Skills:
		return a.Skills
	case Knowledge:
		return a.Knowledge
	case Tasks:
		return a.Tasks
	case Occ:
		return a.Occ
	default:
		return ""
	}
}

// Combined concatenates all answers into one text blob for the
// orientation heuristics.
func (a AnswerSet) Combined() string {
	return a.Skills + " " + a.Knowledge + " " + a.Tasks + " " + a.Occ
}

// TotalLen returns the combined character count across all answers.
func (a AnswerSet) TotalLen() int {
	return len(a.Skills) + len(a.Knowledge) + len(a.Tasks) + len(a.Occ)
}

// QueryVectors holds one unit-normalized query embedding per domain.
type QueryVectors map[Domain][]float32
