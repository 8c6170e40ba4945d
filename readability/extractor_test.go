package readability_test

import (
	"testing"

	"github.com/msousa/jango"
	"github.com/msousa/jango/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.Extract("")

	require.Error(t, err)
	assert.Equal(t, jango.EINVALID, jango.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Conselho de Administração</title></head>
<body><article><p>Composição do conselho de administração da empresa.</p></article></body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "Conselho de Administração", result.Title)
}

func TestExtractor_RemovesNavigation(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Teste</title></head>
<body>
<nav><a href="/inicio">Ligação Início</a><a href="/sobre">Ligação Sobre</a></nav>
<article><p>Este é o conteúdo principal do artigo que deve ser preservado no resultado.</p></article>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.NotContains(t, result.ContentHTML, "Ligação Início")
	assert.NotContains(t, result.ContentHTML, "Ligação Sobre")
}

func TestExtractor_KeepsMainArticleContent(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Teste</title></head>
<body>
<nav><a href="/inicio">Início</a></nav>
<article><p>O investimento previsto para o projeto é de 6 bilhões de dólares até 2027.</p></article>
<footer><p>Rodapé</p></footer>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "6 bilhões de dólares")
}

func TestExtractor_PreservesHeadings(t *testing.T) {
	t.Parallel()

	// go-readability may demote h1 to h2, but heading text is preserved
	html := `<!DOCTYPE html>
<html>
<head><title>Teste</title></head>
<body>
<article>
<h1>Resultados Operacionais</h1>
<p>Introdução aos resultados.</p>
<h2>Produção por Bloco</h2>
<p>Detalhe da produção em cada bloco.</p>
</article>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "Resultados Operacionais")
	assert.Contains(t, result.ContentHTML, "Produção por Bloco")
}

func TestExtractor_PreservesTables(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Teste</title></head>
<body>
<article>
<p>Tabela de produção:</p>
<table>
<tr><th>Ano</th><th>Valor</th></tr>
<tr><td>2023</td><td>1.100.000</td></tr>
</table>
</article>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "<table")
}

func TestExtractor_PreservesLinks(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Teste</title></head>
<body>
<article>
<p>Consulte <a href="https://anpg.co.ao/relatorios">o relatório completo</a> para mais detalhes.</p>
</article>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "<a")
}
