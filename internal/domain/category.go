package domain

import "fmt"

// Category is a role-type classification of an occupation title.
// Classification is total and exclusive: every title maps to exactly one
// category.
type Category string

const (
	// CategoryMilitary covers armed-forces roles.
	CategoryMilitary Category = "military"
	// CategoryHealthcare covers medical and patient-care roles.
	CategoryHealthcare Category = "healthcare"
	// CategoryTech covers software and IT roles.
	CategoryTech Category = "tech"
	// CategoryCreative covers arts and media roles.
	CategoryCreative Category = "creative"
	// CategoryEducation covers teaching roles.
	CategoryEducation Category = "education"
	// CategoryBusiness covers business and finance roles.
	CategoryBusiness Category = "business"
	// CategoryIndustrial covers manufacturing and manual-labor roles.
	CategoryIndustrial Category = "industrial"
	// CategoryField covers on-site technician and service roles.
	CategoryField Category = "field"
	// CategoryOffice is the default for professional roles that match
	// nothing more specific.
	CategoryOffice Category = "office"
)

// Categories returns all nine role-type categories in precedence order:
// earlier categories win when a title matches several keyword sets.
func Categories() [9]Category {
	return [9]Category{
		CategoryMilitary,
		CategoryHealthcare,
		CategoryTech,
		CategoryCreative,
		CategoryEducation,
		CategoryBusiness,
		CategoryIndustrial,
		CategoryField,
		CategoryOffice,
	}
}

// ParseCategory validates a category string from the API.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown preference category %q", s)
}

// PreferenceSet is the set of role-type categories the user selected.
type PreferenceSet map[Category]bool

// NewPreferenceSet builds a set from selected categories.
func NewPreferenceSet(selected ...Category) PreferenceSet {
	p := make(PreferenceSet, len(selected))
	for _, c := range selected {
		p[c] = true
	}
	return p
}

// Any reports whether at least one preference is selected.
func (p PreferenceSet) Any() bool {
	for _, v := range p {
		if v {
			return true
		}
	}
	return false
}

// Selected returns the selected categories in precedence order.
func (p PreferenceSet) Selected() []Category {
	var out []Category
	for _, c := range Categories() {
		if p[c] {
			out = append(out, c)
		}
	}
	return out
}
