// Package rag orchestrates the retrieval-augmented answering pipeline:
// tier selection, retrieval, analytical chart generation, prompt
// composition, generation, and answer formatting.
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/msousa/jango"
)

// Compile-time interface verification.
var (
	_ jango.Answerer      = (*Service)(nil)
	_ jango.HealthChecker = (*Service)(nil)
)

// Defaults for tunable retrieval parameters.
const (
	DefaultTopK = 5

	// DefaultSimilarityThreshold is the minimum cosine similarity a chunk
	// must reach to ground an answer. Below it the fixed no-source
	// sentence is returned without calling the generator.
	DefaultSimilarityThreshold = 0.35

	// DefaultReducedLimit is how many raw documents the reduced tier
	// offers the generator.
	DefaultReducedLimit = 3

	// DefaultMaxPromptTokens bounds the composed prompt when a token
	// counter is configured. Kept well under the generation model's
	// context window to leave room for history and the answer.
	DefaultMaxPromptTokens = 30000
)

// greetingReply answers short salutations without touching retrieval.
const greetingReply = "Olá! Sou o assistente do setor energético e petrolífero de Angola. Em que posso ajudar?"

// Options holds the tunable parameters of the pipeline. The zero value
// uses the defaults above.
type Options struct {
	// TopK is the number of chunks retrieved per question.
	TopK int

	// SimilarityThreshold gates retrieved chunks; results scoring below
	// it are discarded.
	SimilarityThreshold float64

	// AnalyticalKeywords overrides the analytical detection vocabulary.
	// Nil uses jango.DefaultAnalyticalKeywords.
	AnalyticalKeywords []string

	// ReducedLimit is the document count for reduced-tier prompts.
	ReducedLimit int

	// MaxPromptTokens is the token budget for full-tier prompts. Only
	// enforced when the service has a token counter.
	MaxPromptTokens int
}

func (o Options) topK() int {
	if o.TopK > 0 {
		return o.TopK
	}
	return DefaultTopK
}

func (o Options) threshold() float64 {
	if o.SimilarityThreshold > 0 {
		return o.SimilarityThreshold
	}
	return DefaultSimilarityThreshold
}

func (o Options) reducedLimit() int {
	if o.ReducedLimit > 0 {
		return o.ReducedLimit
	}
	return DefaultReducedLimit
}

func (o Options) maxPromptTokens() int {
	if o.MaxPromptTokens > 0 {
		return o.MaxPromptTokens
	}
	return DefaultMaxPromptTokens
}

// Service answers questions over the scraped corpus, degrading through
// serving tiers as components become unavailable. The tier is evaluated
// fresh on every request; no mode state is carried between requests.
type Service struct {
	Index     jango.IndexService
	Embedder  jango.Embedder
	Generator jango.Generator
	Documents jango.DocumentService
	Renderer  jango.ChartRenderer
	Charts    jango.ChartStore

	// Tokens, when set, enforces Opts.MaxPromptTokens on full-tier
	// prompts by dropping the lowest scoring chunks.
	Tokens jango.TokenCounter

	Opts Options
}

// Answer responds to a query. Returns EINVALID for a blank question.
func (s *Service) Answer(ctx context.Context, query *jango.Query) (*jango.Answer, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	kind := jango.ClassifyQuestion(query.Question, s.Opts.AnalyticalKeywords)
	tier := s.selectTier(ctx)

	if kind == jango.KindGreeting {
		return &jango.Answer{Text: greetingReply, Sources: []jango.Source{}, Tier: tier}, nil
	}

	switch tier {
	case jango.TierFull:
		return s.answerFull(ctx, query, kind)
	case jango.TierReduced:
		return s.answerReduced(ctx, query)
	default:
		return s.answerMinimal(ctx, query)
	}
}

// selectTier probes component availability for this request.
func (s *Service) selectTier(ctx context.Context) jango.Tier {
	indexState := s.Index.State(ctx)

	hasDocuments := false
	if n, err := s.Documents.CountDocuments(ctx); err == nil && n > 0 {
		hasDocuments = true
	}

	generatorReady := s.Generator.Ping(ctx) == nil

	return jango.SelectTier(indexState, hasDocuments, generatorReady)
}

// answerFull runs the complete pipeline: retrieve, gate on similarity,
// branch for analytical questions, generate, and format.
func (s *Service) answerFull(ctx context.Context, query *jango.Query, kind jango.QuestionKind) (*jango.Answer, error) {
	embedding, err := s.Embedder.EmbedQuery(ctx, query.Question)
	if err != nil {
		// The index cannot be queried without a question embedding;
		// fall back to raw document excerpts.
		return s.answerReduced(ctx, query)
	}

	results, err := s.Index.Search(ctx, embedding, s.Opts.topK())
	if err != nil {
		return s.answerReduced(ctx, query)
	}

	relevant := results[:0:0]
	for _, r := range results {
		if r.Score >= s.Opts.threshold() {
			relevant = append(relevant, r)
		}
	}

	if len(relevant) == 0 {
		return &jango.Answer{
			Text:    jango.NoSourceSentence,
			Sources: []jango.Source{},
			Tier:    jango.TierFull,
		}, nil
	}

	relevant = s.fitTokenBudget(ctx, query, relevant)

	var chart *jango.Chart
	if kind == jango.KindAnalytical {
		chart = s.buildChart(ctx, query.Question, relevant)
	}

	prompt := jango.ComposePrompt(query.Question, query.History, relevant)
	raw, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	answer := jango.FormatAnswer(raw, relevant, chart)
	answer.Tier = jango.TierFull
	return answer, nil
}

// fitTokenBudget drops the lowest scoring chunks until the composed
// prompt fits the token budget. Search results arrive ordered by score,
// so trimming from the tail removes the weakest grounding first. A
// counting failure leaves the chunk set unchanged.
func (s *Service) fitTokenBudget(ctx context.Context, query *jango.Query, results []*jango.SearchResult) []*jango.SearchResult {
	if s.Tokens == nil {
		return results
	}

	for len(results) > 1 {
		prompt := jango.ComposePrompt(query.Question, query.History, results)
		n, err := s.Tokens.CountTokens(ctx, prompt)
		if err != nil || n <= s.Opts.maxPromptTokens() {
			return results
		}
		results = results[:len(results)-1]
	}
	return results
}

// buildChart extracts a numeric series from the retrieved chunks and
// renders it. Any failure degrades to an informational answer with no
// chart rather than failing the request.
func (s *Service) buildChart(ctx context.Context, question string, results []*jango.SearchResult) *jango.Chart {
	if s.Renderer == nil || s.Charts == nil {
		return nil
	}

	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Chunk.Content
	}

	series := jango.ExtractSeries(question, texts)
	if series == nil {
		return nil
	}

	png, err := s.Renderer.Render(series)
	if err != nil {
		return nil
	}

	url, err := s.Charts.Save(ctx, png)
	if err != nil {
		return nil
	}

	caption := series.Title
	if series.Unit != "" {
		caption = fmt.Sprintf("%s (%s)", series.Title, series.Unit)
	}

	return &jango.Chart{Type: "image", URL: url, Caption: caption}
}

// answerReduced grounds the prompt on raw document excerpts selected by
// keyword, or the most recent documents when no keyword matches.
func (s *Service) answerReduced(ctx context.Context, query *jango.Query) (*jango.Answer, error) {
	docs := s.reducedDocuments(ctx, query.Question)
	if len(docs) == 0 {
		return s.answerMinimal(ctx, query)
	}

	prompt := jango.ComposeDocumentsPrompt(query.Question, query.History, docs)
	raw, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return jango.FormatDocumentsAnswer(raw, docs), nil
}

// reducedDocuments selects grounding documents for the reduced tier.
func (s *Service) reducedDocuments(ctx context.Context, question string) []*jango.Document {
	limit := s.Opts.reducedLimit()

	if kw := questionKeyword(question); kw != "" {
		docs, err := s.Documents.FindDocuments(ctx, jango.DocumentFilter{Keyword: &kw, Limit: limit})
		if err == nil && len(docs) > 0 {
			return docs
		}
	}

	docs, err := s.Documents.FindDocuments(ctx, jango.DocumentFilter{Limit: limit})
	if err != nil {
		return nil
	}
	return docs
}

// answerMinimal generates from general knowledge with no grounding. The
// empty sources list marks the answer as ungrounded.
func (s *Service) answerMinimal(ctx context.Context, query *jango.Query) (*jango.Answer, error) {
	prompt := jango.ComposeGeneralPrompt(query.Question, query.History)
	raw, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &jango.Answer{
		Text:    strings.TrimSpace(raw),
		Sources: []jango.Source{},
		Tier:    jango.TierMinimal,
	}, nil
}

// CheckHealth probes the generation backend, index and content store.
// The aggregate status follows generator reachability.
func (s *Service) CheckHealth(ctx context.Context) *jango.Health {
	components := map[string]string{}

	status := "healthy"
	if err := s.Generator.Ping(ctx); err != nil {
		status = "degraded"
		components["generator"] = "unavailable"
	} else {
		components["generator"] = "ok"
	}

	components["index"] = s.Index.State(ctx).String()

	if n, err := s.Documents.CountDocuments(ctx); err != nil {
		components["documents"] = "unavailable"
	} else {
		components["documents"] = fmt.Sprintf("%d", n)
	}

	return &jango.Health{Status: status, Components: components}
}

// questionKeyword picks the longest significant word of a question for
// reduced-tier document matching.
func questionKeyword(question string) string {
	best := ""
	for _, w := range strings.Fields(jango.Normalize(question)) {
		w = strings.Trim(w, "?!.,;:\"'()")
		if len([]rune(w)) >= 4 && len(w) > len(best) {
			best = w
		}
	}
	return best
}
