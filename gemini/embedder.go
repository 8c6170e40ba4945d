package gemini

import (
	"context"
	"time"

	"github.com/msousa/jango"
	"google.golang.org/genai"
)

// Ensure Embedder implements jango.Embedder at compile time.
var _ jango.Embedder = (*Embedder)(nil)

// Embedder implements jango.Embedder using the Gemini embedding model.
type Embedder struct {
	client *genai.Client

	// CallTimeout bounds each API call. Zero means defaultCallTimeout.
	CallTimeout time.Duration

	// embed is overridable for tests.
	embed func(ctx context.Context, contents []*genai.Content) (*genai.EmbedContentResponse, error)
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client) *Embedder {
	e := &Embedder{client: client}
	e.embed = e.embedContent
	return e
}

func (e *Embedder) timeout() time.Duration {
	if e.CallTimeout > 0 {
		return e.CallTimeout
	}
	return defaultCallTimeout
}

func (e *Embedder) embedContent(ctx context.Context, contents []*genai.Content) (*genai.EmbedContentResponse, error) {
	return e.client.Models.EmbedContent(ctx, embeddingModel, contents, nil)
}

// EmbedDocuments embeds a batch of chunk texts under the per-call deadline.
// Partial results are never returned: any failure aborts the whole batch so
// the index is not built from incomplete vectors.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, "user")
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout())
	defer cancel()

	result, err := e.embed(callCtx, contents)
	if err != nil {
		return nil, jango.Errorf(Classify(err), "embedding failed: %v", err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, jango.Errorf(jango.EINTERNAL, "embedding count mismatch: want %d", len(texts))
	}

	vectors := make([][]float32, len(texts))
	for i, emb := range result.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, jango.Errorf(jango.EINTERNAL, "empty embedding at position %d", i)
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// EmbedQuery embeds a single question for retrieval.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, jango.Errorf(jango.EINVALID, "text required")
	}
	vectors, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}
