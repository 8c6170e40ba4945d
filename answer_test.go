package jango_test

import (
	"strings"
	"testing"

	"github.com/msousa/jango"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippet(t *testing.T) {
	t.Parallel()

	t.Run("short text is unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "produção de petróleo", jango.Snippet("produção  de \n petróleo"))
	})

	t.Run("truncates on word boundaries", func(t *testing.T) {
		t.Parallel()

		words := make([]string, 30)
		for i := range words {
			words[i] = "palavra"
		}

		snippet := jango.Snippet(strings.Join(words, " "))

		assert.True(t, strings.HasSuffix(snippet, "…"))
		assert.Len(t, strings.Fields(snippet), jango.MaxSnippetWords)
	})
}

func TestFormatAnswer(t *testing.T) {
	t.Parallel()

	results := []*jango.SearchResult{
		searchResult("https://sonangol.co.ao/a", "Conteúdo A."),
		searchResult("https://anpg.co.ao/b", "Conteúdo B."),
	}

	t.Run("maps citations in first-appearance order", func(t *testing.T) {
		t.Parallel()

		raw := "Segundo o relatório [2], a produção subiu [1] e manteve-se [2]."

		answer := jango.FormatAnswer(raw, results, nil)

		require.Len(t, answer.Sources, 2)
		assert.Equal(t, "https://anpg.co.ao/b", answer.Sources[0].URL)
		assert.Equal(t, "https://sonangol.co.ao/a", answer.Sources[1].URL)
	})

	t.Run("drops out-of-range citations", func(t *testing.T) {
		t.Parallel()

		answer := jango.FormatAnswer("Resposta [1] com fonte falsa [9].", results, nil)

		require.Len(t, answer.Sources, 1)
		assert.Equal(t, "https://sonangol.co.ao/a", answer.Sources[0].URL)
	})

	t.Run("text without citations carries no sources", func(t *testing.T) {
		t.Parallel()

		answer := jango.FormatAnswer("Resposta sem citações.", results, nil)

		assert.NotNil(t, answer.Sources)
		assert.Empty(t, answer.Sources)
	})

	t.Run("no-source sentence suppresses sources and chart", func(t *testing.T) {
		t.Parallel()

		chart := &jango.Chart{Type: "image", URL: "/charts/x.png"}
		raw := "Infelizmente, " + jango.NoSourceSentence

		answer := jango.FormatAnswer(raw, results, chart)

		assert.Equal(t, jango.NoSourceSentence, answer.Text)
		assert.Empty(t, answer.Sources)
		assert.Nil(t, answer.Chart)
	})

	t.Run("attaches the chart to cited answers", func(t *testing.T) {
		t.Parallel()

		chart := &jango.Chart{Type: "image", URL: "/charts/x.png", Caption: "Produção"}

		answer := jango.FormatAnswer("Resposta [1].", results, chart)

		require.NotNil(t, answer.Chart)
		assert.Equal(t, "/charts/x.png", answer.Chart.URL)
	})

	t.Run("snippet falls back to chunk content", func(t *testing.T) {
		t.Parallel()

		r := searchResult("https://sonangol.co.ao/c", "Texto do próprio chunk usado como excerto.")
		r.Chunk.Metadata.Snippet = ""

		answer := jango.FormatAnswer("Resposta [1].", []*jango.SearchResult{r}, nil)

		require.Len(t, answer.Sources, 1)
		assert.Contains(t, answer.Sources[0].Snippet, "Texto do próprio chunk")
	})
}

func TestFormatDocumentsAnswer(t *testing.T) {
	t.Parallel()

	docs := []*jango.Document{
		{URL: "https://sonangol.co.ao/noticias/1", Title: "Notícia", Content: "Texto da notícia.", Snippet: "Resumo"},
	}

	t.Run("marks the reduced tier and maps citations", func(t *testing.T) {
		t.Parallel()

		answer := jango.FormatDocumentsAnswer("Resposta [1].", docs)

		assert.Equal(t, jango.TierReduced, answer.Tier)
		require.Len(t, answer.Sources, 1)
		assert.Equal(t, "Notícia", answer.Sources[0].Title)
		assert.Equal(t, "Resumo", answer.Sources[0].Snippet)
	})

	t.Run("no-source sentence suppresses sources", func(t *testing.T) {
		t.Parallel()

		answer := jango.FormatDocumentsAnswer(jango.NoSourceSentence, docs)

		assert.Equal(t, jango.NoSourceSentence, answer.Text)
		assert.Empty(t, answer.Sources)
	})
}
