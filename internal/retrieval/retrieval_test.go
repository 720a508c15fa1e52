package retrieval

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder maps keywords to axis-aligned vectors so cosine similarity
// is predictable in tests.
type stubEmbedder struct {
	calls int
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	s.calls++
	axes := []string{"python", "kubernetes", "design"}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, len(axes)+1)
		lower := strings.ToLower(text)
		for j, axis := range axes {
			if strings.Contains(lower, axis) {
				vec[j] = 1
			}
		}
		vec[len(axes)] = 0.1
		out[i] = vec
	}
	return out, nil
}

func (s *stubEmbedder) Close() error { return nil }

const resumeText = `EXPERIENCE
Senior engineer writing Python services for five years.

INFRASTRUCTURE
Ran Kubernetes clusters across three regions.

EDUCATION
BS in Design from a state school.`

func TestChunkTextSplitsOnBlankLines(t *testing.T) {
	chunks := ChunkText(resumeText)
	require.Len(t, chunks, 3)
	assert.Equal(t, "EXPERIENCE", chunks[0].Section)
	assert.Equal(t, "INFRASTRUCTURE", chunks[1].Section)
	assert.Equal(t, 2, chunks[2].Index)
}

func TestChunkTextWindowsLongSections(t *testing.T) {
	long := strings.Repeat("skills and systems work ", 100)
	chunks := ChunkText(long)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c.Text)), maxChunkRunes)
		assert.Equal(t, chunks[0].Section, c.Section)
	}
	// Consecutive windows share overlapping text.
	assert.Contains(t, long, chunks[1].Text[:20])
}

func TestChunkTextEmptyInput(t *testing.T) {
	assert.Empty(t, ChunkText(""))
	assert.Empty(t, ChunkText("\n\n  \n"))
}

func TestIndexAndQueryRanksBySimilarity(t *testing.T) {
	idx := NewIndex(&stubEmbedder{})
	handle, err := idx.IndexText(context.Background(), "sess-1", resumeText)
	require.NoError(t, err)

	matches, err := idx.Query(context.Background(), handle, "kubernetes experience", 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "INFRASTRUCTURE", matches[0].Chunk.Section)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestIndexTextIsIdempotent(t *testing.T) {
	emb := &stubEmbedder{}
	idx := NewIndex(emb)

	h1, err := idx.IndexText(context.Background(), "sess-1", resumeText)
	require.NoError(t, err)
	callsAfterFirst := emb.calls

	h2, err := idx.IndexText(context.Background(), "sess-1", resumeText)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Equal(t, callsAfterFirst, emb.calls)
	assert.Equal(t, 1, idx.Len())
}

func TestHandleScopedToSession(t *testing.T) {
	assert.NotEqual(t, HandleFor("sess-1", resumeText), HandleFor("sess-2", resumeText))
	assert.Equal(t, HandleFor("sess-1", resumeText), HandleFor("sess-1", resumeText))
}

func TestQueryUnknownHandle(t *testing.T) {
	idx := NewIndex(&stubEmbedder{})
	_, err := idx.Query(context.Background(), Handle("nope"), "anything", 3)
	require.Error(t, err)
}

func TestIndexEmptyText(t *testing.T) {
	idx := NewIndex(&stubEmbedder{})
	_, err := idx.IndexText(context.Background(), "sess-1", "   ")
	require.Error(t, err)
}

func TestDrop(t *testing.T) {
	idx := NewIndex(&stubEmbedder{})
	handle, err := idx.IndexText(context.Background(), "sess-1", resumeText)
	require.NoError(t, err)

	idx.Drop(handle)
	assert.Equal(t, 0, idx.Len())
	_, err = idx.Query(context.Background(), handle, "python", 1)
	assert.Error(t, err)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Equal(t, 0.0, cosine([]float32{1}, []float32{1, 2}))
	assert.Equal(t, 0.0, cosine(nil, nil))
}
