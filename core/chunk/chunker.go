// Package chunk splits text into whitespace-token chunks.
// Tokens are runs of non-whitespace; chunks have no overlap.
package chunk

import "strings"

// DefaultSize is the number of tokens kept in a derived entry description.
const DefaultSize = 50

// Chunker splits text into fixed-size token chunks.
type Chunker struct {
	ChunkSize int // number of tokens (words) per chunk
}

// New creates a Chunker with the given chunk size.
// Defaults to DefaultSize if chunkSize <= 0.
func New(chunkSize int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultSize
	}
	return &Chunker{ChunkSize: chunkSize}
}

// Chunk splits the input text into slices of at most ChunkSize words.
// Each chunk is a contiguous block of words joined by spaces.
func (c *Chunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	for i := 0; i < len(words); i += c.ChunkSize {
		end := min(i+c.ChunkSize, len(words))
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

// First returns the leading chunk of text, or "" when text has no tokens.
func (c *Chunker) First(text string) string {
	words := strings.Fields(text)
	if len(words) > c.ChunkSize {
		words = words[:c.ChunkSize]
	}
	return strings.Join(words, " ")
}
