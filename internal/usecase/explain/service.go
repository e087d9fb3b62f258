// Package explain turns a ranked match into counselor-style explanation
// text grounded in the user's own answers. A chat completion produces the
// text when a completer is configured; the local template is both the
// fallback and the default.
package explain

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pathlight/careermatch/internal/domain"
)

// Completer produces free text from a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Request identifies one matched career to explain.
type Request struct {
	Title   string
	Domains []domain.Domain
	Answers domain.AnswerSet
}

// Service generates explanations. completer may be nil.
type Service struct {
	completer Completer
	logger    *zap.Logger
}

// New creates an explanation service.
func New(completer Completer, logger *zap.Logger) *Service {
	return &Service{completer: completer, logger: logger}
}

// Explain returns explanation text for one career. Completion failures are
// logged and absorbed: the template answer always stands in, so the
// endpoint never fails on provider trouble.
func (s *Service) Explain(ctx context.Context, req Request) string {
	if s.completer != nil {
		text, err := s.completer.Complete(ctx, buildPrompt(req))
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
		s.logger.Warn("completion failed, falling back to template explanation",
			zap.String("title", req.Title),
			zap.Error(err),
		)
	}
	return templateExplanation(req)
}

// buildPrompt renders the career-counselor prompt for the chat model.
func buildPrompt(req Request) string {
	labels := make([]string, len(req.Domains))
	for i, d := range req.Domains {
		labels[i] = d.Label()
	}

	return fmt.Sprintf(`You are a career counselor explaining why a career matches someone's profile.

Career: %s
Matched domains: %s

User's answers:
- Activities they enjoy: %q
- Subjects that interest them: %q
- Work they find appealing: %q
- Preferred work environment: %q

Provide a brief, friendly explanation (3-4 sentences) of:
1. Why this career matches their interests
2. What specific aspects of their answers align with this role
3. One key thing they should know about this career path

Be encouraging but realistic. Use natural, conversational language.`,
		req.Title,
		strings.Join(labels, ", "),
		req.Answers.Skills,
		req.Answers.Knowledge,
		req.Answers.Tasks,
		req.Answers.Occ,
	)
}
