// Package slog provides logging decorators for the domain services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/msousa/jango"
)

// Ensure LoggingAnswerer implements jango.Answerer.
var _ jango.Answerer = (*LoggingAnswerer)(nil)

// LoggingAnswerer wraps an Answerer with per-request logging.
type LoggingAnswerer struct {
	next   jango.Answerer
	logger *slog.Logger
}

// NewLoggingAnswerer creates a new LoggingAnswerer.
func NewLoggingAnswerer(next jango.Answerer, logger *slog.Logger) *LoggingAnswerer {
	return &LoggingAnswerer{next: next, logger: logger}
}

// Answer delegates to the wrapped Answerer and logs the outcome.
func (a *LoggingAnswerer) Answer(ctx context.Context, query *jango.Query) (answer *jango.Answer, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"question_len", len(query.Question),
			"duration", time.Since(begin),
			"err", err,
		}
		if answer != nil {
			attrs = append(attrs,
				"tier", string(answer.Tier),
				"sources", len(answer.Sources),
				"chart", answer.Chart != nil,
			)
		}
		a.logger.Info("answer", attrs...)
	}(time.Now())
	return a.next.Answer(ctx, query)
}
