package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"secbrief/internal/contextutil"
	"secbrief/internal/llm"
	"secbrief/internal/vectorindex"
)

// NoMatchAnswer is rendered when filtering eliminates every candidate. The
// chat model is never invoked in that case.
const NoMatchAnswer = "No matching documents found after filtering."

const systemPrompt = "Be concise. Use bullet points. Prefer concrete facts with dates."

const promptTemplate = `You are a financial market analyst assistant.
Answer the user's question using ONLY the provided context.
If the answer is not in the context, say what is missing (e.g., "the filing text doesn't include the disclosure section").

Question: %s

Context:
%s
`

// Engine answers questions over the filing index.
type Engine interface {
	// Ask answers a question by retrieving relevant chunks and generating an
	// answer grounded in them.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

// ragEngine implements the Engine interface over a flat index, its
// position-synchronised metadata entries, and the OpenAI clients.
type ragEngine struct {
	embedder llm.Embedder
	index    vectorindex.Searcher
	meta     []vectorindex.Entry
	chat     llm.Completer
}

// NewEngine creates a new RAG engine. meta must be the metadata store loaded
// from the same build as the index: entry i describes vector i.
func NewEngine(embedder llm.Embedder, index vectorindex.Searcher, meta []vectorindex.Entry, chat llm.Completer) Engine {
	return &ragEngine{
		embedder: embedder,
		index:    index,
		meta:     meta,
		chat:     chat,
	}
}

// Ask answers a question using RAG.
func (e *ragEngine) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.From(ctx)

	logger.InfoContext(ctx, "RAG query started",
		"question", req.Question,
		"ticker", req.Ticker,
		"doc_type", req.DocType,
		"most_recent", req.MostRecent,
	)

	embeddings, err := e.embedder.EmbedTexts(ctx, []string{req.Question})
	if err != nil {
		return AskResponse{}, fmt.Errorf("failed to embed question: %w", err)
	}
	if len(embeddings) == 0 {
		return AskResponse{}, fmt.Errorf("no embedding returned for question")
	}
	queryVec := embeddings[0]
	vectorindex.Normalize(queryVec)

	result := e.Retrieve(queryVec, req)
	if result.Empty() {
		logger.InfoContext(ctx, "no chunks survived filtering")
		return AskResponse{Answer: NoMatchAnswer, NoMatch: true}, nil
	}

	logger.InfoContext(ctx, "retrieval completed", "chunks", len(result.Hits), "sources", len(result.Sources))

	answer, err := e.chat.Complete(ctx, systemPrompt, buildPrompt(req.Question, result.Hits))
	if err != nil {
		return AskResponse{}, fmt.Errorf("failed to generate answer: %w", err)
	}

	return AskResponse{Answer: answer, Sources: result.Sources}, nil
}

// Retrieve runs the retrieve-filter-rank pipeline for a pre-computed,
// L2-normalised query vector. An empty Result means filtering eliminated every
// candidate; that is a first-class outcome, not an error.
func (e *ragEngine) Retrieve(queryVec []float32, req AskRequest) Result {
	k := req.K
	if k <= 0 {
		k = DefaultK
	}
	maxChunks := req.MaxChunks
	if maxChunks <= 0 {
		maxChunks = DefaultMaxChunks
	}

	scores, positions := e.index.Search(queryVec, k)

	hits := make([]Hit, 0, len(positions))
	for i, pos := range positions {
		// Negative positions are the index's no-match sentinel.
		if pos < 0 || pos >= len(e.meta) {
			continue
		}
		hits = append(hits, Hit{Score: scores[i], Entry: e.meta[pos]})
	}

	hits = filterHits(hits, req.Ticker, req.DocType)
	if len(hits) == 0 {
		return Result{}
	}

	if req.MostRecent {
		hits = mostRecentOnly(hits)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > maxChunks {
		hits = hits[:maxChunks]
	}

	return Result{Hits: hits, Sources: collectSources(hits)}
}

// filterHits applies the ticker and doc-type filters: case-insensitive exact
// equality, ANDed. A chunk with an empty field never matches an active filter.
func filterHits(hits []Hit, ticker, docType string) []Hit {
	ticker = strings.TrimSpace(ticker)
	docType = strings.TrimSpace(docType)
	if ticker == "" && docType == "" {
		return hits
	}

	kept := hits[:0]
	for _, h := range hits {
		if ticker != "" && !strings.EqualFold(h.Entry.Meta.Ticker, ticker) {
			continue
		}
		if docType != "" && !strings.EqualFold(h.Entry.Meta.DocType, docType) {
			continue
		}
		kept = append(kept, h)
	}
	return kept
}

// mostRecentOnly narrows hits to the chunks of the single source document with
// the latest filing date. Documents are grouped by URL; a group's date is the
// max parseable filing date among its chunks, and groups with no parseable
// date are skipped in the comparison. Groups are visited in first-seen order
// and only a strictly later date displaces the current winner, so exact ties
// resolve to the first-seen group. If no group has a parseable date the input
// is returned unchanged.
func mostRecentOnly(hits []Hit) []Hit {
	groups := make(map[string][]Hit)
	var order []string
	for _, h := range hits {
		url := h.Entry.Meta.URL
		if _, seen := groups[url]; !seen {
			order = append(order, url)
		}
		groups[url] = append(groups[url], h)
	}

	var bestURL string
	var bestDate time.Time
	found := false
	for _, url := range order {
		groupDate, ok := maxFilingDate(groups[url])
		if !ok {
			continue
		}
		if !found || groupDate.After(bestDate) {
			found = true
			bestDate = groupDate
			bestURL = url
		}
	}

	if !found {
		return hits
	}
	return groups[bestURL]
}

// maxFilingDate returns the latest parseable filing date in the group.
// Unparseable or empty dates are silently excluded.
func maxFilingDate(hits []Hit) (time.Time, bool) {
	var max time.Time
	found := false
	for _, h := range hits {
		d, err := time.Parse("2006-01-02", h.Entry.Meta.FilingDate)
		if err != nil {
			continue
		}
		if !found || d.After(max) {
			found = true
			max = d
		}
	}
	return max, found
}

// collectSources returns the de-duplicated, order-preserving list of non-empty
// source URLs, capped at MaxSources. A repeated URL does not consume a slot.
func collectSources(hits []Hit) []string {
	seen := make(map[string]struct{}, len(hits))
	var sources []string
	for _, h := range hits {
		url := h.Entry.Meta.URL
		if url == "" {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		sources = append(sources, url)
		if len(sources) == MaxSources {
			break
		}
	}
	return sources
}

// buildPrompt formats the selected chunks into the grounding context block.
func buildPrompt(question string, hits []Hit) string {
	blocks := make([]string, len(hits))
	for i, h := range hits {
		m := h.Entry.Meta
		blocks[i] = fmt.Sprintf("[%s | %s | %s] %s", m.Ticker, m.DocType, m.FilingDate, h.Entry.Text)
	}
	return fmt.Sprintf(promptTemplate, question, strings.Join(blocks, "\n\n---\n\n"))
}
