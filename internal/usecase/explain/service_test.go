package explain

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/pathlight/careermatch/internal/domain"
)

type fakeCompleter struct {
	text      string
	err       error
	gotPrompt string
	calls     int
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.gotPrompt = prompt
	return f.text, f.err
}

func explainRequest() Request {
	return Request{
		Title:   "Software Developer",
		Domains: []domain.Domain{domain.Skills, domain.Occ},
		Answers: domain.AnswerSet{
			Skills: "Enjoy solving puzzles and writing little scripts at home.",
			Occ:    "quiet office with a steady routine",
		},
	}
}

func TestExplain_UsesCompleter(t *testing.T) {
	completer := &fakeCompleter{text: "  A hand-written explanation.  "}
	svc := New(completer, zap.NewNop())

	got := svc.Explain(context.Background(), explainRequest())
	if got != "A hand-written explanation." {
		t.Errorf("expected trimmed completion, got %q", got)
	}
	if completer.calls != 1 {
		t.Errorf("expected 1 completion call, got %d", completer.calls)
	}
}

func TestExplain_NilCompleterFallsBackToTemplate(t *testing.T) {
	svc := New(nil, zap.NewNop())

	got := svc.Explain(context.Background(), explainRequest())
	if !strings.HasPrefix(got, "This career aligns well with your profile.") {
		t.Errorf("expected template explanation, got %q", got)
	}
}

func TestExplain_CompleterErrorFallsBackToTemplate(t *testing.T) {
	completer := &fakeCompleter{err: fmt.Errorf("rate limited")}
	svc := New(completer, zap.NewNop())

	got := svc.Explain(context.Background(), explainRequest())
	if !strings.HasPrefix(got, "This career aligns well with your profile.") {
		t.Errorf("expected template fallback, got %q", got)
	}
}

func TestExplain_BlankCompletionFallsBackToTemplate(t *testing.T) {
	completer := &fakeCompleter{text: "   \n  "}
	svc := New(completer, zap.NewNop())

	got := svc.Explain(context.Background(), explainRequest())
	if !strings.HasPrefix(got, "This career aligns well with your profile.") {
		t.Errorf("expected template fallback, got %q", got)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(explainRequest())

	if !strings.Contains(prompt, "Career: Software Developer") {
		t.Errorf("prompt missing career title: %q", prompt)
	}
	if !strings.Contains(prompt, "Matched domains: Skills, Work Style") {
		t.Errorf("prompt missing domain labels: %q", prompt)
	}
	if !strings.Contains(prompt, `"quiet office with a steady routine"`) {
		t.Errorf("prompt missing quoted answer: %q", prompt)
	}
}
