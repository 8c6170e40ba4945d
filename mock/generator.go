package mock

import (
	"context"

	"github.com/msousa/jango"
)

var _ jango.Generator = (*Generator)(nil)

// Generator is a mock implementation of jango.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, prompt string) (string, error)
	PingFn     func(ctx context.Context) error
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.GenerateFn(ctx, prompt)
}

func (g *Generator) Ping(ctx context.Context) error {
	return g.PingFn(ctx)
}
