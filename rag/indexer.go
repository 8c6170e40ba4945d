package rag

import (
	"context"

	"github.com/msousa/jango"
)

// embedBatchSize bounds how many chunk texts go to the embedding backend
// per call.
const embedBatchSize = 100

// Indexer rebuilds the vector index from the document store. A rebuild is
// all-or-nothing: any embedding failure leaves the previous index
// generation serving.
type Indexer struct {
	Documents jango.DocumentService
	Embedder  jango.Embedder
	Index     jango.IndexService

	// ChunkWords and ChunkOverlap override the default chunking
	// parameters when positive.
	ChunkWords   int
	ChunkOverlap int
}

// Rebuild loads every stored document, chunks and embeds it, and swaps
// the new index in atomically. Returns the number of indexed chunks.
// A rebuild already in progress surfaces as ECONFLICT.
func (ix *Indexer) Rebuild(ctx context.Context) (int, error) {
	docs, err := ix.Documents.FindDocuments(ctx, jango.DocumentFilter{})
	if err != nil {
		return 0, err
	}

	var chunks []*jango.Chunk
	for _, doc := range docs {
		chunks = append(chunks, jango.SplitDocument(doc, ix.ChunkWords, ix.ChunkOverlap)...)
	}

	if len(chunks) > 0 {
		if err := ix.embedChunks(ctx, chunks); err != nil {
			return 0, err
		}
	}

	if err := ix.Index.Build(ctx, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// embedChunks fills in embeddings batch by batch. Partial batches never
// reach the index: the first failure aborts the whole rebuild.
func (ix *Indexer) embedChunks(ctx context.Context, chunks []*jango.Chunk) error {
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := min(start+embedBatchSize, len(chunks))
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
		}

		vectors, err := ix.Embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			return err
		}
		if len(vectors) != len(batch) {
			return jango.Errorf(jango.EINTERNAL, "embedding count mismatch: got %d, want %d", len(vectors), len(batch))
		}

		for i, v := range vectors {
			batch[i].Embedding = v
		}
	}
	return nil
}
