package jango

import (
	"context"
	"math"
)

// IndexState describes the availability of the vector index.
type IndexState int

const (
	// IndexUnavailable means the index could not be opened or loaded.
	IndexUnavailable IndexState = iota

	// IndexEmpty means the index is operational but holds no chunks.
	IndexEmpty

	// IndexReady means the index holds at least one embedded chunk.
	IndexReady
)

// String returns a human-readable state name.
func (s IndexState) String() string {
	switch s {
	case IndexEmpty:
		return "empty"
	case IndexReady:
		return "ready"
	default:
		return "unavailable"
	}
}

// IndexService represents a durable vector index over document chunks.
//
// The index is replaced atomically: Build persists a complete new generation
// of chunks and swaps it in as one operation, so concurrent searches see
// either the previous generation or the new one, never a mix.
type IndexService interface {
	// Build replaces the entire index with the given embedded chunks.
	// Chunks without embeddings are rejected with EINVALID. On error the
	// previous index generation remains in place.
	Build(ctx context.Context, chunks []*Chunk) error

	// Search returns up to limit chunks most similar to the query vector,
	// ordered by descending similarity. Ties are broken by insertion
	// order. An empty index returns an empty slice, not an error.
	// Returns EUNAVAILABLE if the index cannot be used.
	Search(ctx context.Context, embedding []float32, limit int) ([]*SearchResult, error)

	// Len reports the number of chunks in the current generation.
	Len(ctx context.Context) (int, error)

	// State reports the current index availability.
	State(ctx context.Context) IndexState
}

// CosineSimilarity returns the cosine similarity between two vectors.
// Mismatched lengths and zero vectors yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
