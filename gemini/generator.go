// Package gemini implements text generation, embeddings and token counting
// using the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"time"

	"github.com/msousa/jango"
	"google.golang.org/genai"
)

const (
	generationModel = "gemini-2.5-flash"
	embeddingModel  = "gemini-embedding-001"
)

// Retry policy for transient generation failures.
const (
	maxAttempts    = 3
	initialBackoff = 500 * time.Millisecond
)

// defaultCallTimeout bounds each individual API call. Serving requests
// arrive without a deadline, so a stalled upstream connection would
// otherwise hang the caller indefinitely.
const defaultCallTimeout = 30 * time.Second

// Ensure Generator implements jango.Generator at compile time.
var _ jango.Generator = (*Generator)(nil)

// Generator implements jango.Generator using Google Gemini.
type Generator struct {
	client *genai.Client

	// CallTimeout bounds each API call. Zero means defaultCallTimeout.
	CallTimeout time.Duration

	// call, count and sleep are overridable for tests.
	call  func(ctx context.Context, prompt string) (string, error)
	count func(ctx context.Context) error
	sleep func(ctx context.Context, d time.Duration) error
}

// NewGenerator creates a new Generator.
func NewGenerator(client *genai.Client) *Generator {
	g := &Generator{client: client, sleep: sleepCtx}
	g.call = g.generateContent
	g.count = g.countTokens
	return g
}

func (g *Generator) timeout() time.Duration {
	if g.CallTimeout > 0 {
		return g.CallTimeout
	}
	return defaultCallTimeout
}

// Generate returns the model's raw text for the prompt. Each attempt runs
// under a per-call deadline; deadline expiry classifies as unavailability.
// Rate limits and transient network failures are retried with exponential
// backoff up to maxAttempts; authentication failures are surfaced
// immediately.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", jango.Errorf(jango.EINVALID, "prompt required")
	}

	backoff := initialBackoff

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			if err := g.sleep(ctx, backoff); err != nil {
				return "", jango.Errorf(jango.EUNAVAILABLE, "generation canceled: %v", err)
			}
			backoff *= 2
		}

		callCtx, cancel := context.WithTimeout(ctx, g.timeout())
		text, err := g.call(callCtx, prompt)
		cancel()
		if err == nil {
			return text, nil
		}

		code := Classify(err)
		if !Retryable(code) {
			return "", jango.Errorf(code, "generation failed: %v", err)
		}
		lastErr = jango.Errorf(code, "generation failed after %d attempts: %v", attempt+1, err)
	}

	return "", lastErr
}

// generateContent performs a single GenerateContent call.
func (g *Generator) generateContent(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, generationModel,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", jango.Errorf(jango.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

// Ping reports whether the generation backend is reachable by issuing a
// cheap token-count request under the per-call deadline.
func (g *Generator) Ping(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout())
	defer cancel()

	if err := g.count(callCtx); err != nil {
		return jango.Errorf(Classify(err), "gemini unreachable: %v", err)
	}
	return nil
}

func (g *Generator) countTokens(ctx context.Context) error {
	_, err := g.client.Models.CountTokens(ctx, generationModel,
		[]*genai.Content{genai.NewContentFromText("ping", "user")}, nil)
	return err
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.3)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "És um consultor especializado no setor energético e petrolífero de Angola. Responde em português, com rigor profissional, baseando-te apenas no contexto fornecido.",
			}},
		},
		Temperature: &temp,
	}
}

// Classify maps a Gemini API failure to an application error code.
// HTTP 429 is rate limiting, 401/403 are authentication failures,
// 5xx and transport errors are transient unavailability.
func Classify(err error) string {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429:
			return jango.ERATELIMITED
		case apiErr.Code == 401 || apiErr.Code == 403:
			return jango.EUNAUTHORIZED
		case apiErr.Code >= 500:
			return jango.EUNAVAILABLE
		default:
			return jango.EINTERNAL
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return jango.EUNAVAILABLE
	}
	// Transport-level failures have no API error attached.
	return jango.EUNAVAILABLE
}

// Retryable reports whether a failure with the given code may be retried.
// Authentication failures are never retried.
func Retryable(code string) bool {
	return code == jango.ERATELIMITED || code == jango.EUNAVAILABLE
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
