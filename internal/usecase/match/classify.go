package match

import (
	"strings"

	"github.com/pathlight/careermatch/internal/domain"
)

// titleRule is one role-type predicate. Rules are evaluated independently;
// the ordered table below resolves overlaps, so exactly one category wins.
type titleRule struct {
	category domain.Category
	match    func(t string) bool
}

func has(t, sub string) bool { return strings.Contains(t, sub) }

func hasAny(t string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(t, s) {
			return true
		}
	}
	return false
}

// titleRules is the classifier knowledge base in precedence order:
// military > healthcare > tech > creative > education > business >
// industrial > field. Office is the fallback when nothing matches.
// Keyword sets are tunable vocabulary, not an algorithmic contract.
var titleRules = []titleRule{
	{domain.CategoryMilitary, func(t string) bool {
		return hasAny(t, "military", "infantry", "enlisted", "tactical", "command",
			"special forces", "army", "navy", "air force")
	}},
	{domain.CategoryHealthcare, func(t string) bool {
		return hasAny(t, "physician", "doctor", "nurse", "medical", "health",
			"therapist", "dental", "surgeon", "practitioner", "pharmacist",
			"paramedic", "radiologic", "diagnostic", "clinical", "patient care")
	}},
	{domain.CategoryTech, func(t string) bool {
		return hasAny(t, "software", "developer", "programmer", "data scientist",
			"data analyst", "web ", "database", "systems analyst",
			"information technology", "cybersecurity", "it ", "tech ") ||
			(has(t, "engineer") && hasAny(t, "software", "computer", "network"))
	}},
	{domain.CategoryCreative, func(t string) bool {
		return hasAny(t, "designer", "artist", "photographer", "writer", "editor",
			"graphic", "media", "creative", "animator", "illustrator", "musician",
			"producer", "actor") ||
			(has(t, "director") && !has(t, "executive"))
	}},
	{domain.CategoryEducation, func(t string) bool {
		return hasAny(t, "teacher", "professor", "instructor", "educator", "tutor",
			"lecturer", "trainer", "librarian") ||
			(has(t, "coach") && !has(t, "athletic")) ||
			(has(t, "counselor") && has(t, "school"))
	}},
	{domain.CategoryBusiness, func(t string) bool {
		return hasAny(t, "accountant", "financial", "finance", "accounting",
			"auditor", "banker", "consultant", "sales", "marketing",
			"business analyst", "economist", "actuary", "investment", "portfolio",
			"broker", "underwriter") ||
			(has(t, "tax") && !has(t, "taxi"))
	}},
	{domain.CategoryIndustrial, func(t string) bool {
		return hasAny(t, "assembler", "welder", "fabricator", "machinist", "pumper",
			"loader", "truck", "driver", "drilling", "mining", "refuse",
			"production", "manufacturing", "warehouse", "forklift", "mechanic",
			"janitorial", "housekeeping", "custodian", "cook", "food service",
			"cafeteria", "laborer", "construction") ||
			(has(t, "operator") && !has(t, "computer")) ||
			(has(t, "maintenance") && !has(t, "software"))
	}},
	{domain.CategoryField, func(t string) bool {
		return hasAny(t, "field", "technician", "installation", "repair", "inspector") ||
			(has(t, "service") && !has(t, "food"))
	}},
}

// Classify maps a title to its single role-type category. Predicates are
// evaluated over the lower-cased title and resolved by fixed precedence, so
// the result is total and exclusive; in particular, industrial wins over
// field even when both predicates fire.
func Classify(title string) domain.Category {
	t := strings.ToLower(title)
	for _, rule := range titleRules {
		if rule.match(t) {
			return rule.category
		}
	}
	return domain.CategoryOffice
}
