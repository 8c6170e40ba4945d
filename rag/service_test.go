package rag_test

import (
	"context"
	"strings"
	"testing"

	"github.com/msousa/jango"
	"github.com/msousa/jango/mock"
	"github.com/msousa/jango/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullTierService returns a Service wired for the full tier with the
// given retrieval results and generator output.
func fullTierService(results []*jango.SearchResult, generated string) *rag.Service {
	return &rag.Service{
		Index: &mock.IndexService{
			StateFn: func(ctx context.Context) jango.IndexState { return jango.IndexReady },
			SearchFn: func(ctx context.Context, embedding []float32, limit int) ([]*jango.SearchResult, error) {
				return results, nil
			},
		},
		Embedder: &mock.Embedder{
			EmbedQueryFn: func(ctx context.Context, text string) ([]float32, error) {
				return []float32{1, 0}, nil
			},
		},
		Generator: &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string) (string, error) {
				return generated, nil
			},
			PingFn: func(ctx context.Context) error { return nil },
		},
		Documents: &mock.DocumentService{
			CountDocumentsFn: func(ctx context.Context) (int, error) { return 10, nil },
		},
	}
}

func chunkResult(url, content string, score float64) *jango.SearchResult {
	return &jango.SearchResult{
		Chunk: &jango.Chunk{
			DocumentURL: url,
			Content:     content,
			Metadata:    jango.ChunkMetadata{Title: "Relatório", URL: url},
		},
		Score: score,
	}
}

func TestService_Answer_Validation(t *testing.T) {
	t.Parallel()

	s := fullTierService(nil, "")
	_, err := s.Answer(context.Background(), &jango.Query{Question: "   "})
	require.Error(t, err)
	assert.Equal(t, jango.EINVALID, jango.ErrorCode(err))
}

func TestService_Answer_Greeting(t *testing.T) {
	t.Parallel()

	s := fullTierService(nil, "")
	s.Embedder = &mock.Embedder{
		EmbedQueryFn: func(ctx context.Context, text string) ([]float32, error) {
			t.Error("greeting must not trigger retrieval")
			return nil, nil
		},
	}

	answer, err := s.Answer(context.Background(), &jango.Query{Question: "Olá!"})
	require.NoError(t, err)
	assert.Contains(t, answer.Text, "Olá")
	assert.Empty(t, answer.Sources)
	assert.Nil(t, answer.Chart)
}

func TestService_Answer_Full(t *testing.T) {
	t.Parallel()

	t.Run("grounded answer with citations", func(t *testing.T) {
		t.Parallel()

		results := []*jango.SearchResult{
			chunkResult("https://sonangol.co.ao/conselho", "O PCA da Sonangol é Gaspar Martins.", 0.9),
			chunkResult("https://anpg.co.ao/relatorio", "Produção anual detalhada.", 0.8),
		}

		s := fullTierService(results, "O PCA da Sonangol é Gaspar Martins [1].")

		answer, err := s.Answer(context.Background(), &jango.Query{Question: "Quem é o PCA da Sonangol?"})
		require.NoError(t, err)

		assert.Equal(t, jango.TierFull, answer.Tier)
		require.Len(t, answer.Sources, 1)
		assert.Equal(t, "https://sonangol.co.ao/conselho", answer.Sources[0].URL)
		assert.Nil(t, answer.Chart)
	})

	t.Run("no chunk clears the threshold", func(t *testing.T) {
		t.Parallel()

		results := []*jango.SearchResult{
			chunkResult("https://sonangol.co.ao/historia", "Texto irrelevante.", 0.05),
		}

		s := fullTierService(results, "")
		s.Generator = &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string) (string, error) {
				t.Error("generator must not be called without grounding")
				return "", nil
			},
			PingFn: func(ctx context.Context) error { return nil },
		}

		answer, err := s.Answer(context.Background(), &jango.Query{Question: "Qual a produção de diamantes?"})
		require.NoError(t, err)

		assert.Equal(t, jango.NoSourceSentence, answer.Text)
		assert.Empty(t, answer.Sources)
		assert.Nil(t, answer.Chart)
	})

	t.Run("prompt contains only retrieved chunks", func(t *testing.T) {
		t.Parallel()

		results := []*jango.SearchResult{
			chunkResult("https://anpg.co.ao/a", "Conteúdo recuperado.", 0.9),
		}

		var prompt string
		s := fullTierService(results, "Resposta [1].")
		s.Generator = &mock.Generator{
			GenerateFn: func(ctx context.Context, p string) (string, error) {
				prompt = p
				return "Resposta [1].", nil
			},
			PingFn: func(ctx context.Context) error { return nil },
		}

		_, err := s.Answer(context.Background(), &jango.Query{Question: "O que produz a ANPG?"})
		require.NoError(t, err)

		assert.Contains(t, prompt, "Conteúdo recuperado.")
		assert.Equal(t, 1, strings.Count(prompt, "<documento>"))
	})
}

func TestService_Answer_Analytical(t *testing.T) {
	t.Parallel()

	analyticalResults := func(content string) []*jango.SearchResult {
		return []*jango.SearchResult{chunkResult("https://anpg.co.ao/relatorio", content, 0.9)}
	}

	t.Run("renders and attaches chart", func(t *testing.T) {
		t.Parallel()

		content := "Produção em 2021: 1,12 milhões bpd\nProdução em 2022: 1,14 milhões bpd"
		s := fullTierService(analyticalResults(content), "A produção evoluiu de 1,12 para 1,14 milhões de bpd [1].")
		s.Renderer = &mock.ChartRenderer{
			RenderFn: func(series *jango.Series) ([]byte, error) {
				require.GreaterOrEqual(t, len(series.Points), jango.MinChartPoints)
				return []byte("png"), nil
			},
		}
		s.Charts = &mock.ChartStore{
			SaveFn: func(ctx context.Context, png []byte) (string, error) {
				return "/charts/abc.png", nil
			},
		}

		answer, err := s.Answer(context.Background(), &jango.Query{
			Question: "Mostra a evolução da produção de petróleo nos últimos anos",
		})
		require.NoError(t, err)

		require.NotNil(t, answer.Chart)
		assert.Equal(t, "image", answer.Chart.Type)
		assert.Equal(t, "/charts/abc.png", answer.Chart.URL)
		require.Len(t, answer.Sources, 1)
	})

	t.Run("too few points degrades to informational", func(t *testing.T) {
		t.Parallel()

		content := "Produção em 2023: 1,10 milhões bpd"
		s := fullTierService(analyticalResults(content), "A produção foi de 1,10 milhões de bpd [1].")
		s.Renderer = &mock.ChartRenderer{
			RenderFn: func(series *jango.Series) ([]byte, error) {
				t.Error("renderer must not run with a single point")
				return nil, nil
			},
		}
		s.Charts = &mock.ChartStore{
			SaveFn: func(ctx context.Context, png []byte) (string, error) { return "", nil },
		}

		answer, err := s.Answer(context.Background(), &jango.Query{
			Question: "Mostra a evolução da produção de petróleo",
		})
		require.NoError(t, err)
		assert.Nil(t, answer.Chart)
	})

	t.Run("render failure drops the chart silently", func(t *testing.T) {
		t.Parallel()

		content := "2021: 31%\n2022: 35%"
		s := fullTierService(analyticalResults(content), "A quota subiu de 31% para 35% [1].")
		s.Renderer = &mock.ChartRenderer{
			RenderFn: func(series *jango.Series) ([]byte, error) {
				return nil, jango.Errorf(jango.EINTERNAL, "render failed")
			},
		}
		s.Charts = &mock.ChartStore{
			SaveFn: func(ctx context.Context, png []byte) (string, error) { return "", nil },
		}

		answer, err := s.Answer(context.Background(), &jango.Query{
			Question: "Compara a quota de mercado por ano",
		})
		require.NoError(t, err)
		assert.Nil(t, answer.Chart)
		assert.NotEmpty(t, answer.Text)
	})
}

func TestService_Answer_Reduced(t *testing.T) {
	t.Parallel()

	t.Run("serves raw excerpts when index is empty", func(t *testing.T) {
		t.Parallel()

		doc := &jango.Document{
			URL:     "https://sonangol.co.ao/noticias/producao",
			Title:   "Produção 2023",
			Content: "A produção média foi de 1,1 milhões de bpd.",
		}

		s := &rag.Service{
			Index: &mock.IndexService{
				StateFn: func(ctx context.Context) jango.IndexState { return jango.IndexEmpty },
			},
			Generator: &mock.Generator{
				GenerateFn: func(ctx context.Context, prompt string) (string, error) {
					assert.Contains(t, prompt, doc.Content)
					return "A produção foi de 1,1 milhões de bpd [1].", nil
				},
				PingFn: func(ctx context.Context) error { return nil },
			},
			Documents: &mock.DocumentService{
				CountDocumentsFn: func(ctx context.Context) (int, error) { return 1, nil },
				FindDocumentsFn: func(ctx context.Context, filter jango.DocumentFilter) ([]*jango.Document, error) {
					return []*jango.Document{doc}, nil
				},
			},
		}

		answer, err := s.Answer(context.Background(), &jango.Query{Question: "Qual foi a produção em 2023?"})
		require.NoError(t, err)

		assert.Equal(t, jango.TierReduced, answer.Tier)
		require.Len(t, answer.Sources, 1)
		assert.Equal(t, doc.URL, answer.Sources[0].URL)
		assert.Nil(t, answer.Chart)
	})

	t.Run("keyword filter is tried before recency", func(t *testing.T) {
		t.Parallel()

		var keywords []string
		s := &rag.Service{
			Index: &mock.IndexService{
				StateFn: func(ctx context.Context) jango.IndexState { return jango.IndexEmpty },
			},
			Generator: &mock.Generator{
				GenerateFn: func(ctx context.Context, prompt string) (string, error) { return "Resposta.", nil },
				PingFn:     func(ctx context.Context) error { return nil },
			},
			Documents: &mock.DocumentService{
				CountDocumentsFn: func(ctx context.Context) (int, error) { return 1, nil },
				FindDocumentsFn: func(ctx context.Context, filter jango.DocumentFilter) ([]*jango.Document, error) {
					if filter.Keyword != nil {
						keywords = append(keywords, *filter.Keyword)
					}
					return []*jango.Document{{URL: "https://anpg.co.ao/x", Content: "texto"}}, nil
				},
			},
		}

		_, err := s.Answer(context.Background(), &jango.Query{Question: "Quais são as licitações da ANPG?"})
		require.NoError(t, err)
		assert.Equal(t, []string{"licitacoes"}, keywords)
	})
}

func TestService_Answer_Minimal(t *testing.T) {
	t.Parallel()

	s := &rag.Service{
		Index: &mock.IndexService{
			StateFn: func(ctx context.Context) jango.IndexState { return jango.IndexUnavailable },
		},
		Generator: &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string) (string, error) {
				return "Angola é um dos maiores produtores de petróleo de África.", nil
			},
			PingFn: func(ctx context.Context) error { return nil },
		},
		Documents: &mock.DocumentService{
			CountDocumentsFn: func(ctx context.Context) (int, error) { return 0, nil },
		},
	}

	answer, err := s.Answer(context.Background(), &jango.Query{Question: "Fala-me do petróleo em Angola"})
	require.NoError(t, err)

	assert.Equal(t, jango.TierMinimal, answer.Tier)
	assert.Empty(t, answer.Sources)
	assert.Nil(t, answer.Chart)
}

func TestService_Answer_TokenBudget(t *testing.T) {
	t.Parallel()

	t.Run("drops weakest chunks over budget", func(t *testing.T) {
		t.Parallel()

		results := []*jango.SearchResult{
			chunkResult("https://sonangol.co.ao/a", "Chunk mais relevante.", 0.9),
			chunkResult("https://anpg.co.ao/b", "Chunk menos relevante.", 0.5),
		}

		var prompt string
		s := fullTierService(results, "Resposta [1].")
		s.Generator = &mock.Generator{
			GenerateFn: func(ctx context.Context, p string) (string, error) {
				prompt = p
				return "Resposta [1].", nil
			},
			PingFn: func(ctx context.Context) error { return nil },
		}
		// Each document block counts 1000, so two chunks exceed the
		// budget and one fits.
		s.Tokens = &mock.TokenCounter{
			CountTokensFn: func(ctx context.Context, text string) (int, error) {
				return strings.Count(text, "<documento") * 1000, nil
			},
		}
		s.Opts.MaxPromptTokens = 1500

		answer, err := s.Answer(context.Background(), &jango.Query{Question: "Qual é a produção?"})
		require.NoError(t, err)

		assert.Equal(t, 1, strings.Count(prompt, "<documento"))
		assert.Contains(t, prompt, "Chunk mais relevante.")
		assert.NotContains(t, prompt, "Chunk menos relevante.")
		assert.NotNil(t, answer)
	})

	t.Run("counting failure keeps all chunks", func(t *testing.T) {
		t.Parallel()

		results := []*jango.SearchResult{
			chunkResult("https://sonangol.co.ao/a", "Primeiro.", 0.9),
			chunkResult("https://anpg.co.ao/b", "Segundo.", 0.5),
		}

		var prompt string
		s := fullTierService(results, "Resposta [1].")
		s.Generator = &mock.Generator{
			GenerateFn: func(ctx context.Context, p string) (string, error) {
				prompt = p
				return "Resposta [1].", nil
			},
			PingFn: func(ctx context.Context) error { return nil },
		}
		s.Tokens = &mock.TokenCounter{
			CountTokensFn: func(ctx context.Context, text string) (int, error) {
				return 0, jango.Errorf(jango.EINTERNAL, "tokenizer failed")
			},
		}
		s.Opts.MaxPromptTokens = 1

		_, err := s.Answer(context.Background(), &jango.Query{Question: "Qual é a produção?"})
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(prompt, "<documento"))
	})
}

func TestService_Answer_GeneratorErrors(t *testing.T) {
	t.Parallel()

	results := []*jango.SearchResult{
		chunkResult("https://sonangol.co.ao/a", "Conteúdo.", 0.9),
	}

	s := fullTierService(results, "")
	s.Generator = &mock.Generator{
		GenerateFn: func(ctx context.Context, prompt string) (string, error) {
			return "", jango.Errorf(jango.EUNAUTHORIZED, "invalid API key")
		},
		PingFn: func(ctx context.Context) error { return nil },
	}

	_, err := s.Answer(context.Background(), &jango.Query{Question: "Quem dirige a Sonangol?"})
	require.Error(t, err)
	assert.Equal(t, jango.EUNAUTHORIZED, jango.ErrorCode(err))
}

func TestService_CheckHealth(t *testing.T) {
	t.Parallel()

	t.Run("healthy when generator reachable", func(t *testing.T) {
		t.Parallel()

		s := fullTierService(nil, "")
		health := s.CheckHealth(context.Background())

		assert.Equal(t, "healthy", health.Status)
		assert.Equal(t, "ok", health.Components["generator"])
		assert.Equal(t, "ready", health.Components["index"])
		assert.Equal(t, "10", health.Components["documents"])
	})

	t.Run("degraded when generator unreachable", func(t *testing.T) {
		t.Parallel()

		s := fullTierService(nil, "")
		s.Generator = &mock.Generator{
			PingFn: func(ctx context.Context) error {
				return jango.Errorf(jango.EUNAVAILABLE, "backend down")
			},
		}

		health := s.CheckHealth(context.Background())
		assert.Equal(t, "degraded", health.Status)
		assert.Equal(t, "unavailable", health.Components["generator"])
	})
}
