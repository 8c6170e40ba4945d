package main_test

import (
	"context"
	"testing"

	"github.com/msousa/jango"
	main "github.com/msousa/jango/cmd/jango"
	"github.com/msousa/jango/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints answer with sources", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newTestDeps()
		deps.Answerer = &mock.Answerer{
			AnswerFn: func(ctx context.Context, query *jango.Query) (*jango.Answer, error) {
				assert.Equal(t, "Qual é a produção de petróleo de Angola?", query.Question)
				return &jango.Answer{
					Text: "Angola produz cerca de 1,1 milhões de barris por dia [1].",
					Sources: []jango.Source{{
						Title: "Relatório de Produção",
						URL:   "https://anpg.co.ao/relatorio",
					}},
					Tier: jango.TierFull,
				}, nil
			},
		}

		cmd := &main.AskCmd{Question: "Qual é a produção de petróleo de Angola?"}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "1,1 milhões de barris")
		assert.Contains(t, output, "Fontes:")
		assert.Contains(t, output, "[1] Relatório de Produção (https://anpg.co.ao/relatorio)")
	})

	t.Run("notes degraded tier on stderr", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newTestDeps()
		deps.Answerer = &mock.Answerer{
			AnswerFn: func(ctx context.Context, query *jango.Query) (*jango.Answer, error) {
				return &jango.Answer{Text: "resposta", Tier: jango.TierMinimal}, nil
			},
		}

		require.NoError(t, (&main.AskCmd{Question: "x"}).Run(deps))
		assert.Contains(t, stderr.String(), "minimal mode")
	})

	t.Run("surfaces answer errors", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newTestDeps()
		deps.Answerer = &mock.Answerer{
			AnswerFn: func(ctx context.Context, query *jango.Query) (*jango.Answer, error) {
				return nil, jango.Errorf(jango.EUNAVAILABLE, "generator offline")
			},
		}

		err := (&main.AskCmd{Question: "x"}).Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "generator offline")
	})
}
