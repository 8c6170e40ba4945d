package jango

import "context"

// Generator produces free text from a composed prompt via an external
// model API.
type Generator interface {
	// Generate returns the model's raw text for the prompt. Transient
	// failures are retried internally with backoff; exhausted retries
	// surface as ERATELIMITED or EUNAVAILABLE, and authentication
	// failures surface immediately as EUNAUTHORIZED without retrying.
	Generate(ctx context.Context, prompt string) (string, error)

	// Ping reports whether the generation backend is reachable.
	Ping(ctx context.Context) error
}
