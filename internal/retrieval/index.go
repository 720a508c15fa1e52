package retrieval

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Handle identifies an indexed document. The same (session, text) pair
// always yields the same handle, so re-uploading a resume does not grow
// the index.
type Handle string

// Match is one query hit.
type Match struct {
	Chunk Chunk
	Score float64
}

type document struct {
	chunks  []Chunk
	vectors [][]float32
}

// Index is an in-memory cosine-similarity index over embedded chunks.
type Index struct {
	embedder Embedder

	mu   sync.RWMutex
	docs map[Handle]*document
}

// NewIndex builds an empty index on top of an embedder.
func NewIndex(embedder Embedder) *Index {
	return &Index{
		embedder: embedder,
		docs:     make(map[Handle]*document),
	}
}

// HandleFor computes the handle for a (session, text) pair without
// indexing anything.
func HandleFor(sessionID, text string) Handle {
	sum := sha256.Sum256([]byte(sessionID + "\x00" + text))
	return Handle(hex.EncodeToString(sum[:]))
}

// IndexText chunks, embeds, and stores the text. Indexing the same text for
// the same session is a no-op returning the existing handle.
func (idx *Index) IndexText(ctx context.Context, sessionID, text string) (Handle, error) {
	handle := HandleFor(sessionID, text)

	idx.mu.RLock()
	_, exists := idx.docs[handle]
	idx.mu.RUnlock()
	if exists {
		return handle, nil
	}

	chunks := ChunkText(text)
	if len(chunks) == 0 {
		return "", fmt.Errorf("retrieval: nothing to index")
	}
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := idx.embedder.Embed(ctx, texts)
	if err != nil {
		return "", fmt.Errorf("retrieval: embed chunks: %w", err)
	}

	idx.mu.Lock()
	idx.docs[handle] = &document{chunks: chunks, vectors: vectors}
	idx.mu.Unlock()
	return handle, nil
}

// Query embeds the query text and returns the topK most similar chunks of
// the document, highest score first. Ties keep document order.
func (idx *Index) Query(ctx context.Context, handle Handle, query string, topK int) ([]Match, error) {
	idx.mu.RLock()
	doc, ok := idx.docs[handle]
	idx.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("retrieval: unknown handle %q", handle)
	}
	if topK <= 0 {
		topK = 3
	}

	vectors, err := idx.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("retrieval: embed query: %w", err)
	}
	queryVec := vectors[0]

	matches := make([]Match, 0, len(doc.chunks))
	for i, chunk := range doc.chunks {
		matches = append(matches, Match{
			Chunk: chunk,
			Score: cosine(queryVec, doc.vectors[i]),
		})
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Drop removes a document from the index.
func (idx *Index) Drop(handle Handle) {
	idx.mu.Lock()
	delete(idx.docs, handle)
	idx.mu.Unlock()
}

// Len reports how many documents are indexed.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
