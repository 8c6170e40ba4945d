package sqlite

import (
	"context"
	"encoding/binary"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/msousa/jango"
)

// Compile-time interface verification.
var _ jango.IndexService = (*IndexService)(nil)

// snapshot is one immutable index generation. Searches read whichever
// snapshot the pointer holds; Build installs a complete replacement, so a
// query never observes a half-built index.
type snapshot struct {
	chunks  []*jango.Chunk
	vectors [][]float32
}

// IndexService implements jango.IndexService using SQLite for persistence
// and an in-memory snapshot for queries.
type IndexService struct {
	db *DB

	current atomic.Pointer[snapshot]

	// buildMu serializes index builds; queries are not blocked by it.
	buildMu sync.Mutex
}

// NewIndexService creates a new IndexService and loads the persisted index
// generation if one exists. A missing or empty index is not an error.
func NewIndexService(db *DB) (*IndexService, error) {
	s := &IndexService{db: db}
	if err := s.load(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// Build replaces the entire index with the given embedded chunks. The new
// generation is written in one transaction; on any error the previous
// generation stays in place, both on disk and in memory. Concurrent builds
// are rejected with ECONFLICT.
func (s *IndexService) Build(ctx context.Context, chunks []*jango.Chunk) error {
	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return err
		}
		if len(c.Embedding) == 0 {
			return jango.Errorf(jango.EINVALID, "chunk %s has no embedding", c.ID)
		}
	}

	if !s.buildMu.TryLock() {
		return jango.Errorf(jango.ECONFLICT, "index build already in progress")
	}
	defer s.buildMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var gen int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE((SELECT value FROM index_meta WHERE key = 'generation'), 0)",
	).Scan(&gen); err != nil {
		return err
	}
	next := gen + 1

	for pos, c := range chunks {
		var publishDate any
		if c.Metadata.PublishDate != nil {
			publishDate = c.Metadata.PublishDate.Format(time.RFC3339)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO index_chunks (generation, position, id, document_url, ordinal, content, embedding, title, url, snippet, selector, heading, publish_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, next, pos, c.ID, c.DocumentURL, c.Ordinal, c.Content, encodeVector(c.Embedding),
			c.Metadata.Title, c.Metadata.URL, c.Metadata.Snippet, c.Metadata.Selector,
			c.Metadata.Heading, publishDate); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO index_meta (key, value) VALUES ('generation', ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, next); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM index_chunks WHERE generation < ?", next); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.current.Store(newSnapshot(chunks))
	return nil
}

// Search returns up to limit chunks most similar to the query vector,
// ordered by descending cosine similarity, ties broken by insertion order.
func (s *IndexService) Search(ctx context.Context, embedding []float32, limit int) ([]*jango.SearchResult, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, jango.Errorf(jango.EUNAVAILABLE, "vector index unavailable")
	}
	if limit <= 0 || len(snap.chunks) == 0 {
		return []*jango.SearchResult{}, nil
	}

	type scored struct {
		pos   int
		score float64
	}
	all := make([]scored, len(snap.chunks))
	for i, vec := range snap.vectors {
		all[i] = scored{pos: i, score: jango.CosineSimilarity(embedding, vec)}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].pos < all[j].pos
	})

	if limit > len(all) {
		limit = len(all)
	}
	results := make([]*jango.SearchResult, 0, limit)
	for _, sc := range all[:limit] {
		results = append(results, &jango.SearchResult{
			Chunk: snap.chunks[sc.pos],
			Score: sc.score,
		})
	}
	return results, nil
}

// Len reports the number of chunks in the current generation.
func (s *IndexService) Len(ctx context.Context) (int, error) {
	snap := s.current.Load()
	if snap == nil {
		return 0, jango.Errorf(jango.EUNAVAILABLE, "vector index unavailable")
	}
	return len(snap.chunks), nil
}

// State reports the current index availability.
func (s *IndexService) State(ctx context.Context) jango.IndexState {
	snap := s.current.Load()
	switch {
	case snap == nil:
		return jango.IndexUnavailable
	case len(snap.chunks) == 0:
		return jango.IndexEmpty
	default:
		return jango.IndexReady
	}
}

// load reconstructs the in-memory snapshot from the persisted generation.
// Query results after a reload are identical to the pre-persist state.
func (s *IndexService) load(ctx context.Context) error {
	var gen int64
	if err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE((SELECT value FROM index_meta WHERE key = 'generation'), 0)",
	).Scan(&gen); err != nil {
		return err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_url, ordinal, content, embedding, title, url, snippet, selector, heading, publish_date
		FROM index_chunks
		WHERE generation = ?
		ORDER BY position ASC
	`, gen)
	if err != nil {
		return err
	}
	defer rows.Close()

	var chunks []*jango.Chunk
	for rows.Next() {
		var c jango.Chunk
		var blob []byte
		var publishDate *string

		if err := rows.Scan(&c.ID, &c.DocumentURL, &c.Ordinal, &c.Content, &blob,
			&c.Metadata.Title, &c.Metadata.URL, &c.Metadata.Snippet, &c.Metadata.Selector,
			&c.Metadata.Heading, &publishDate); err != nil {
			return err
		}
		c.Embedding = decodeVector(blob)
		if publishDate != nil {
			t, err := parseRFC3339(*publishDate, "publish_date")
			if err != nil {
				return err
			}
			c.Metadata.PublishDate = &t
		}
		chunks = append(chunks, &c)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	s.current.Store(newSnapshot(chunks))
	return nil
}

func newSnapshot(chunks []*jango.Chunk) *snapshot {
	vectors := make([][]float32, len(chunks))
	for i, c := range chunks {
		vectors[i] = c.Embedding
	}
	return &snapshot{chunks: chunks, vectors: vectors}
}

// encodeVector serializes a float32 vector as little-endian bytes.
func encodeVector(v []float32) []byte {
	b := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(f))
	}
	return b
}

// decodeVector deserializes a vector written by encodeVector.
func decodeVector(b []byte) []float32 {
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return v
}
