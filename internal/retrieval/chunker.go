// Package retrieval indexes resume text into embedded chunks and answers
// similarity queries against them. The index is in-memory and scoped to a
// session; re-indexing the same text is idempotent.
package retrieval

import (
	"strings"
)

const (
	// maxChunkRunes bounds one chunk. Sections longer than this are split
	// into overlapping windows so no sentence is stranded on a boundary.
	maxChunkRunes = 800
	// overlapRunes is carried from the end of one window into the next.
	overlapRunes = 120
)

// Chunk is one indexed slice of a document.
type Chunk struct {
	// Index is the chunk's position in document order.
	Index int
	// Section is the heading-ish first line of the source section, used
	// for display alongside matches.
	Section string
	// Text is the chunk body.
	Text string
}

// ChunkText splits resume text on blank-line section boundaries, then
// windows any oversized section. Section order is preserved.
func ChunkText(text string) []Chunk {
	sections := splitSections(text)
	var chunks []Chunk
	for _, section := range sections {
		label := sectionLabel(section)
		for _, window := range windows(section) {
			chunks = append(chunks, Chunk{
				Index:   len(chunks),
				Section: label,
				Text:    window,
			})
		}
	}
	return chunks
}

func splitSections(text string) []string {
	var sections []string
	var current []string
	flush := func() {
		joined := strings.TrimSpace(strings.Join(current, "\n"))
		if joined != "" {
			sections = append(sections, joined)
		}
		current = current[:0]
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return sections
}

func sectionLabel(section string) string {
	first := section
	if i := strings.IndexByte(section, '\n'); i >= 0 {
		first = section[:i]
	}
	first = strings.TrimSpace(first)
	const labelLimit = 60
	runes := []rune(first)
	if len(runes) > labelLimit {
		return string(runes[:labelLimit])
	}
	return first
}

// windows splits one section into overlapping rune windows. Short sections
// come back as a single window.
func windows(section string) []string {
	runes := []rune(section)
	if len(runes) <= maxChunkRunes {
		return []string{section}
	}
	step := maxChunkRunes - overlapRunes
	var out []string
	for start := 0; start < len(runes); start += step {
		end := start + maxChunkRunes
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, strings.TrimSpace(string(runes[start:end])))
		if end == len(runes) {
			break
		}
	}
	return out
}
