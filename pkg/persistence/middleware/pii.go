package middleware

import (
	"context"
	"regexp"

	"github.com/surveyflow/surveyflow/pkg/domain"
	"github.com/surveyflow/surveyflow/pkg/ports"
)

// Mask replaces sensitive answers at rest.
const Mask = "***"

// KindLookup resolves the kind of a question id in the current graph.
type KindLookup func(questionID string) (domain.Kind, bool)

// PIIOption configures the PII middleware.
type PIIOption func(*piiMiddleware)

// WithKindLookup leaves answers of choice questions unmasked. Those answers
// are option keys, and a masked key would no longer satisfy its question
// when the session is loaded again.
func WithKindLookup(lookup KindLookup) PIIOption {
	return func(m *piiMiddleware) {
		m.kindOf = lookup
	}
}

type piiMiddleware struct {
	next     ports.StateStore
	patterns []*regexp.Regexp
	kindOf   KindLookup
}

// NewPIIMiddleware creates a middleware that masks answers whose question id
// matches any of the patterns. Blank answers stay blank so resume still finds them.
// Masking is one-way: loaded sessions carry the mask, not the original value.
func NewPIIMiddleware(patternStrings []string, opts ...PIIOption) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.StateStore) ports.StateStore {
		m := &piiMiddleware{next: next, patterns: patterns}
		for _, opt := range opts {
			opt(m)
		}
		return m
	}
}

func (m *piiMiddleware) keyed(qid string) bool {
	if m.kindOf == nil {
		return false
	}
	kind, ok := m.kindOf(qid)
	return ok && kind.KeyedAnswer()
}

func (m *piiMiddleware) Save(ctx context.Context, sessionID string, session *domain.Session) error {
	// Clone so the caller's in-memory session keeps the real answers
	cloned := session.Clone()

	for qid, answer := range cloned.State.Answers {
		if domain.IsBlank(answer) || m.keyed(qid) {
			continue
		}
		for _, p := range m.patterns {
			if p.MatchString(qid) {
				cloned.State.Answers[qid] = Mask
				break
			}
		}
	}

	return m.next.Save(ctx, sessionID, cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *piiMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
