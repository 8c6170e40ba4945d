package mock

import (
	"context"

	"github.com/msousa/jango"
)

var _ jango.Answerer = (*Answerer)(nil)

// Answerer is a mock implementation of jango.Answerer.
type Answerer struct {
	AnswerFn func(ctx context.Context, query *jango.Query) (*jango.Answer, error)
}

func (a *Answerer) Answer(ctx context.Context, query *jango.Query) (*jango.Answer, error) {
	return a.AnswerFn(ctx, query)
}

var _ jango.HealthChecker = (*HealthChecker)(nil)

// HealthChecker is a mock implementation of jango.HealthChecker.
type HealthChecker struct {
	CheckHealthFn func(ctx context.Context) *jango.Health
}

func (h *HealthChecker) CheckHealth(ctx context.Context) *jango.Health {
	return h.CheckHealthFn(ctx)
}
