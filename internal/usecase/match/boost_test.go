package match

import (
	"math"
	"testing"

	"github.com/pathlight/careermatch/internal/domain"
)

func TestPreferenceBoost(t *testing.T) {
	prefs := domain.NewPreferenceSet(domain.CategoryTech, domain.CategoryCreative)

	t.Run("match", func(t *testing.T) {
		if got := preferenceBoost(domain.CategoryTech, prefs); got != prefBoostMatch {
			t.Fatalf("expected %f, got %f", prefBoostMatch, got)
		}
	})

	t.Run("mismatch", func(t *testing.T) {
		if got := preferenceBoost(domain.CategoryIndustrial, prefs); got != prefBoostMismatch {
			t.Fatalf("expected %f, got %f", prefBoostMismatch, got)
		}
	})

	t.Run("no preferences selected", func(t *testing.T) {
		if got := preferenceBoost(domain.CategoryTech, domain.NewPreferenceSet()); got != 0 {
			t.Fatalf("expected 0 with no preferences, got %f", got)
		}
	})
}

func TestOrientationBoost(t *testing.T) {
	practical := domain.AnswerSet{
		Skills:    "I love to build apps and write code for real projects",
		Knowledge: "mostly self-taught web development",
		Tasks:     "shipping software",
		Occ:       "maker",
	}
	theoretical := domain.AnswerSet{
		Skills:    "advanced math and statistics",
		Knowledge: "probability theory",
		Tasks:     "proving theorems, research",
		Occ:       "academia",
	}
	neither := domain.AnswerSet{
		Skills:    "talking with people",
		Knowledge: "hospitality",
		Tasks:     "organizing events",
		Occ:       "front desk",
	}

	cases := []struct {
		name    string
		title   string
		answers domain.AnswerSet
		want    float64
	}{
		{"practical answers, applied title", "Software Developer", practical, appliedMatchBoost},
		{"practical answers, pure theory title", "Mathematician", practical, theoryMismatchBoost},
		{"theory answers, pure theory title", "Statistician", theoretical, theoryMatchBoost},
		{"theory answers, applied title", "Web Developer", theoretical, 0},
		{"neutral answers", "Software Developer", neither, 0},
		{"neutral title", "Florist", practical, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := orientationBoost(tc.title, tc.answers)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("expected %f, got %f", tc.want, got)
			}
		})
	}
}

// Orientation rules are not mutually exclusive; a title carrying both
// applied and theory markers accumulates both adjustments.
func TestOrientationBoost_RulesSum(t *testing.T) {
	practical := domain.AnswerSet{
		Skills:    "I build software and design systems",
		Knowledge: "",
		Tasks:     "",
		Occ:       "",
	}

	// "Theoretical Software Engineer" fires both pure-theory and
	// applied-tech predicates.
	got := orientationBoost("Theoretical Software Engineer", practical)
	want := appliedMatchBoost + theoryMismatchBoost
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected summed boost %f, got %f", want, got)
	}
}
