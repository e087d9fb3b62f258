package match

import (
	"strings"

	"github.com/pathlight/careermatch/internal/domain"
)

// Preference boost adjustments. Classification is exclusive, so a title
// contributes exactly one of these (or 0 with no preferences selected) —
// boosts never stack across categories.
const (
	prefBoostMatch    = 0.10
	prefBoostMismatch = -0.15
)

// preferenceBoost scores how a classified title aligns with the selected
// preference set.
func preferenceBoost(category domain.Category, prefs domain.PreferenceSet) float64 {
	if !prefs.Any() {
		return 0
	}
	if prefs[category] {
		return prefBoostMatch
	}
	return prefBoostMismatch
}

// Orientation boost adjustments. Unlike preference boosts these rules are
// not mutually exclusive and sum when several fire.
const (
	appliedMatchBoost   = 0.15
	theoryMismatchBoost = -0.20
	theoryMatchBoost    = 0.10
)

// builderVocabulary signals hands-on, maker-style intent in answer text.
var builderVocabulary = []string{
	"build", "create", "code", "develop", "make", "design", "write",
	"program", "app", "website", "software", "project",
}

// theoryVocabulary signals research or theory-oriented intent.
var theoryVocabulary = []string{"math", "statistic", "theory", "research"}

// pureTheoryTitle reports whether a title names a purely theoretical role.
// These predicates are independent of the role-type classifier.
func pureTheoryTitle(t string) bool {
	return hasAny(t, "mathematician", "statistician", "theoretical") ||
		(has(t, "research") && has(t, "scientist"))
}

// appliedTechTitle reports whether a title names an applied/practical
// technical role.
func appliedTechTitle(t string) bool {
	return hasAny(t, "software", "developer", "engineer", "programmer",
		"web ", "application")
}

// orientationBoost cross-references the applied-vs-theoretical signal in the
// user's combined answer text against the title's orientation.
func orientationBoost(title string, answers domain.AnswerSet) float64 {
	t := strings.ToLower(title)
	text := strings.ToLower(answers.Combined())

	mentionsPractical := hasAny(text, builderVocabulary...)
	theoryOnly := !mentionsPractical && hasAny(text, theoryVocabulary...)

	isPureTheory := pureTheoryTitle(t)
	isAppliedTech := appliedTechTitle(t)

	var boost float64
	if mentionsPractical && isAppliedTech {
		boost += appliedMatchBoost
	}
	if mentionsPractical && isPureTheory {
		boost += theoryMismatchBoost
	}
	if theoryOnly && isPureTheory {
		boost += theoryMatchBoost
	}
	return boost
}
