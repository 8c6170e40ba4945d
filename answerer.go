package jango

import "context"

// Answerer provides natural language question answering over scraped
// sector content.
type Answerer interface {
	// Answer responds to a query, selecting the serving tier from live
	// component availability. Returns EINVALID for a blank question.
	Answer(ctx context.Context, query *Query) (*Answer, error)
}

// Health describes the aggregate service status.
type Health struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// HealthChecker reports component availability.
type HealthChecker interface {
	// CheckHealth probes the generation backend, index and content store.
	CheckHealth(ctx context.Context) *Health
}
