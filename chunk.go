package jango

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default chunking parameters. Roughly 350 words keeps chunks under the
// embedding model's token budget for Portuguese prose.
const (
	DefaultChunkWords   = 350
	DefaultChunkOverlap = 40
)

// Chunk represents a bounded, contiguous segment of a document's text.
// Chunks are the unit of vector indexing: they are created from exactly one
// document at index-build time, never mutated, and replaced wholesale when
// the index is rebuilt.
type Chunk struct {
	ID          string        `json:"id"`
	DocumentURL string        `json:"documentUrl"`
	Ordinal     int           `json:"ordinal"`
	Content     string        `json:"content"`
	Embedding   []float32     `json:"embedding,omitempty"`
	Metadata    ChunkMetadata `json:"metadata"`
}

// ChunkMetadata carries provenance inherited from the parent document,
// used to build citations without consulting the document store again.
type ChunkMetadata struct {
	Title       string     `json:"title,omitempty"`
	URL         string     `json:"url"`
	Snippet     string     `json:"snippet,omitempty"`
	Selector    string     `json:"selector,omitempty"`
	Heading     string     `json:"heading,omitempty"`
	PublishDate *time.Time `json:"publishDate,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.DocumentURL == "" {
		return Errorf(EINVALID, "chunk document URL required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	return nil
}

// SearchResult represents a retrieval match with its similarity score.
type SearchResult struct {
	Chunk *Chunk  `json:"chunk"`
	Score float64 `json:"score"`
}

// Embedder computes vector embeddings for text.
type Embedder interface {
	// EmbedDocuments embeds a batch of chunk texts. The result has one
	// vector per input, all with the same dimensionality. An error means
	// no vectors were produced; partial results are never returned.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery embeds a single question for retrieval.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// SplitDocument splits a document's content into ordered chunks of at most
// maxWords words with overlapWords words of overlap between neighbours.
// Chunks preserve original text order via the Ordinal field and inherit the
// document's metadata unmodified. The nearest preceding markdown heading is
// recorded on each chunk for context.
func SplitDocument(doc *Document, maxWords, overlapWords int) []*Chunk {
	if maxWords <= 0 {
		maxWords = DefaultChunkWords
	}
	if overlapWords < 0 || overlapWords >= maxWords {
		overlapWords = 0
	}

	sections := ExtractSections(doc.Content)

	var chunks []*Chunk
	var buf []string
	heading := ""

	flush := func() {
		text := strings.TrimSpace(strings.Join(buf, "\n"))
		if text == "" {
			buf = nil
			return
		}
		chunks = append(chunks, &Chunk{
			ID:          uuid.New().String(),
			DocumentURL: doc.URL,
			Ordinal:     len(chunks),
			Content:     text,
			Metadata: ChunkMetadata{
				Title:       doc.Title,
				URL:         doc.URL,
				Snippet:     doc.Snippet,
				Selector:    doc.Selector,
				Heading:     heading,
				PublishDate: doc.PublishDate,
			},
		})

		// Carry the tail of the previous chunk forward as overlap.
		if overlapWords > 0 {
			words := strings.Fields(text)
			if len(words) > overlapWords {
				words = words[len(words)-overlapWords:]
			}
			buf = []string{strings.Join(words, " ")}
		} else {
			buf = nil
		}
	}

	wordCount := func() int {
		n := 0
		for _, p := range buf {
			n += len(strings.Fields(p))
		}
		return n
	}

	lines := strings.Split(doc.Content, "\n")
	sectionIdx := 0
	for i, line := range lines {
		for sectionIdx < len(sections) && sections[sectionIdx].Line <= i {
			heading = sections[sectionIdx].Title
			sectionIdx++
		}

		lineWords := len(strings.Fields(line))
		if wordCount()+lineWords > maxWords && wordCount() > 0 {
			flush()
		}

		// A single line longer than the budget is split on word boundaries.
		if lineWords > maxWords {
			words := strings.Fields(line)
			for len(words) > 0 {
				n := min(maxWords-wordCount(), len(words))
				buf = append(buf, strings.Join(words[:n], " "))
				words = words[n:]
				if wordCount() >= maxWords {
					flush()
				}
			}
			continue
		}

		buf = append(buf, line)
	}
	flush()

	return chunks
}
