package rag

import "secbrief/internal/vectorindex"

// Defaults for retrieval. K deliberately over-fetches so metadata filters have
// a pool to narrow.
const (
	DefaultK         = 25
	DefaultMaxChunks = 8
)

// MaxSources caps the source URL list returned for display, independent of
// MaxChunks.
const MaxSources = 5

// AskRequest represents a RAG query.
type AskRequest struct {
	// Question is the user's question to answer.
	Question string `json:"question"`
	// Ticker optionally restricts candidates to one ticker (case-insensitive
	// exact match).
	Ticker string `json:"ticker,omitempty"`
	// DocType optionally restricts candidates to one form type, e.g. "8-K".
	DocType string `json:"doc_type,omitempty"`
	// MostRecent narrows candidates to the single source document with the
	// latest filing date after filtering.
	MostRecent bool `json:"most_recent,omitempty"`
	// K is the candidate count to retrieve before filtering. Defaults to DefaultK.
	K int `json:"k,omitempty"`
	// MaxChunks caps the chunks included in the answer context. Defaults to
	// DefaultMaxChunks.
	MaxChunks int `json:"max_chunks,omitempty"`
}

// Hit pairs a retrieved chunk with its similarity score. Ephemeral, produced
// per query.
type Hit struct {
	Score float32           `json:"score"`
	Entry vectorindex.Entry `json:"entry"`
}

// Result is the ordered output of the retrieval engine.
type Result struct {
	// Hits is sorted by score descending, truncated to MaxChunks. Empty when
	// filtering eliminated every candidate.
	Hits []Hit
	// Sources is the de-duplicated, order-preserving list of non-empty source
	// URLs from Hits, capped at MaxSources.
	Sources []string
}

// Empty reports whether filtering eliminated every candidate.
func (r Result) Empty() bool { return len(r.Hits) == 0 }

// AskResponse is the answer to a RAG query.
type AskResponse struct {
	// Answer is the generated answer, or the no-match message when filtering
	// eliminated every candidate.
	Answer string `json:"answer"`
	// Sources lists up to MaxSources source URLs backing the answer.
	Sources []string `json:"sources"`
	// NoMatch is true when no chunks survived filtering and the chat model was
	// never consulted.
	NoMatch bool `json:"no_match,omitempty"`
}
