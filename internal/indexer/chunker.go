package indexer

import "strings"

// DefaultChunkSize is the default window size in characters.
const DefaultChunkSize = 1200

// DefaultChunkOverlap is the default overlap between consecutive windows.
const DefaultChunkOverlap = 150

// Chunker splits cleaned filing text into fixed-size character windows.
// Chunk boundaries are opaque to retrieval; no semantic splitting.
type Chunker struct {
	size    int
	overlap int
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithChunkSize sets the window size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithOverlap sets the overlap between windows in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// NewChunker creates a chunker with the given options.
func NewChunker(opts ...Option) *Chunker {
	c := &Chunker{
		size:    DefaultChunkSize,
		overlap: DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(c)
	}
	// Overlap must leave the cursor moving forward.
	if c.overlap >= c.size {
		c.overlap = c.size / 4
	}
	return c
}

// Split cuts text into windows of size characters, each window starting
// overlap characters before the previous one ended. The final window is
// whatever remains. Windows that are empty after trimming are dropped;
// sizes are measured in runes so multi-byte text chunks consistently.
func (c *Chunker) Split(text string) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	n := len(runes)
	var chunks []string

	start := 0
	for start < n {
		end := start + c.size
		if end > n {
			end = n
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == n {
			break
		}
		start = end - c.overlap
		if start < 0 {
			start = 0
		}
	}

	return chunks
}
