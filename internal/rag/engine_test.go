package rag

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	llm_mocks "secbrief/internal/llm/mocks"
	"secbrief/internal/vectorindex"
)

// stubSearcher returns a canned search result regardless of the query.
type stubSearcher struct {
	scores    []float32
	positions []int
}

func (s *stubSearcher) Search(query []float32, k int) ([]float32, []int) {
	return s.scores, s.positions
}

func entry(chunkID, ticker, docType, filingDate, url string) vectorindex.Entry {
	return vectorindex.Entry{
		ChunkID: chunkID,
		Text:    "text of " + chunkID,
		Meta: vectorindex.Meta{
			ID:         chunkID,
			Ticker:     ticker,
			DocType:    docType,
			FilingDate: filingDate,
			URL:        url,
			Source:     "SEC_EDGAR",
		},
	}
}

func newTestEngine(meta []vectorindex.Entry, scores []float32, positions []int) *ragEngine {
	return &ragEngine{
		index: &stubSearcher{scores: scores, positions: positions},
		meta:  meta,
	}
}

func chunkIDs(hits []Hit) []string {
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.Entry.ChunkID
	}
	return ids
}

func TestRetrieveDiscardsSentinelPositions(t *testing.T) {
	meta := []vectorindex.Entry{entry("a", "AAPL", "8-K", "2024-01-01", "u1")}
	e := newTestEngine(meta, []float32{0.9, 0, 0}, []int{0, -1, -1})

	result := e.Retrieve([]float32{1}, AskRequest{})
	if len(result.Hits) != 1 || result.Hits[0].Entry.ChunkID != "a" {
		t.Fatalf("expected single hit a, got %v", chunkIDs(result.Hits))
	}
}

func TestRetrieveTickerFilterCaseInsensitive(t *testing.T) {
	meta := []vectorindex.Entry{
		entry("a", "aapl", "8-K", "2024-01-01", "u1"),
		entry("b", "MSFT", "8-K", "2024-01-02", "u2"),
		entry("c", "", "8-K", "2024-01-03", "u3"),
	}
	e := newTestEngine(meta, []float32{0.9, 0.8, 0.7}, []int{0, 1, 2})

	result := e.Retrieve([]float32{1}, AskRequest{Ticker: "AAPL"})
	if got := chunkIDs(result.Hits); len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected [a], got %v", got)
	}
}

func TestRetrieveMissingFieldNeverMatchesActiveFilter(t *testing.T) {
	meta := []vectorindex.Entry{
		entry("a", "", "", "2024-01-01", "u1"),
	}
	e := newTestEngine(meta, []float32{0.9}, []int{0})

	if result := e.Retrieve([]float32{1}, AskRequest{Ticker: "AAPL"}); !result.Empty() {
		t.Fatalf("expected empty result, got %v", chunkIDs(result.Hits))
	}
	if result := e.Retrieve([]float32{1}, AskRequest{DocType: "8-K"}); !result.Empty() {
		t.Fatalf("expected empty result, got %v", chunkIDs(result.Hits))
	}
}

func TestRetrieveFiltersAreANDed(t *testing.T) {
	meta := []vectorindex.Entry{
		entry("a", "AAPL", "8-K", "2024-01-01", "u1"),
		entry("b", "AAPL", "10-Q", "2024-01-02", "u2"),
		entry("c", "MSFT", "8-K", "2024-01-03", "u3"),
	}
	e := newTestEngine(meta, []float32{0.9, 0.8, 0.7}, []int{0, 1, 2})

	result := e.Retrieve([]float32{1}, AskRequest{Ticker: "aapl", DocType: "8-k"})
	if got := chunkIDs(result.Hits); len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected [a], got %v", got)
	}
}

func TestRetrieveAllFilteredOutIsEmptyNotError(t *testing.T) {
	meta := []vectorindex.Entry{
		entry("a", "AAPL", "8-K", "2024-01-01", "u1"),
	}
	e := newTestEngine(meta, []float32{0.9}, []int{0})

	result := e.Retrieve([]float32{1}, AskRequest{Ticker: "TSLA"})
	if !result.Empty() {
		t.Fatalf("expected empty result, got %v", chunkIDs(result.Hits))
	}
	if result.Sources != nil {
		t.Fatalf("expected nil sources, got %v", result.Sources)
	}
}

func TestRetrieveZeroIndexResults(t *testing.T) {
	e := newTestEngine(nil, nil, nil)
	if result := e.Retrieve([]float32{1}, AskRequest{}); !result.Empty() {
		t.Fatal("expected empty result for empty index")
	}
}

func TestRetrieveMostRecentPicksLatestDocument(t *testing.T) {
	// A and B belong to u1 (2024-01-01), C to u2 (2024-02-01). Recency wins
	// over score: only C survives despite A scoring highest.
	meta := []vectorindex.Entry{
		entry("a", "AAPL", "8-K", "2024-01-01", "u1"),
		entry("b", "AAPL", "8-K", "2024-01-01", "u1"),
		entry("c", "AAPL", "8-K", "2024-02-01", "u2"),
	}
	e := newTestEngine(meta, []float32{0.9, 0.5, 0.8}, []int{0, 1, 2})

	result := e.Retrieve([]float32{1}, AskRequest{MostRecent: true, MaxChunks: 5})
	if got := chunkIDs(result.Hits); len(got) != 1 || got[0] != "c" {
		t.Fatalf("expected [c], got %v", got)
	}
	if len(result.Sources) != 1 || result.Sources[0] != "u2" {
		t.Fatalf("expected sources [u2], got %v", result.Sources)
	}
}

func TestRetrieveMostRecentSingleSourceURL(t *testing.T) {
	meta := []vectorindex.Entry{
		entry("a", "AAPL", "8-K", "2024-03-01", "u1"),
		entry("b", "AAPL", "8-K", "2024-03-01", "u1"),
		entry("c", "AAPL", "8-K", "2024-01-15", "u2"),
		entry("d", "AAPL", "8-K", "2024-02-20", "u3"),
	}
	e := newTestEngine(meta, []float32{0.4, 0.9, 0.8, 0.7}, []int{0, 1, 2, 3})

	result := e.Retrieve([]float32{1}, AskRequest{MostRecent: true})
	for _, h := range result.Hits {
		if h.Entry.Meta.URL != "u1" {
			t.Fatalf("expected only u1 chunks, got %s from %s", h.Entry.ChunkID, h.Entry.Meta.URL)
		}
	}
	if len(result.Hits) != 2 {
		t.Fatalf("expected both u1 chunks, got %v", chunkIDs(result.Hits))
	}
}

func TestRetrieveMostRecentDateTieFirstSeenWins(t *testing.T) {
	meta := []vectorindex.Entry{
		entry("a", "AAPL", "8-K", "2024-01-01", "u1"),
		entry("b", "AAPL", "8-K", "2024-01-01", "u2"),
	}
	e := newTestEngine(meta, []float32{0.5, 0.9}, []int{0, 1})

	result := e.Retrieve([]float32{1}, AskRequest{MostRecent: true})
	if got := chunkIDs(result.Hits); len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected first-seen group [a] on exact date tie, got %v", got)
	}
}

func TestRetrieveMostRecentNoParseableDatesDegradesGracefully(t *testing.T) {
	meta := []vectorindex.Entry{
		entry("a", "AAPL", "8-K", "", "u1"),
		entry("b", "AAPL", "8-K", "not-a-date", "u2"),
	}
	e := newTestEngine(meta, []float32{0.9, 0.8}, []int{0, 1})

	result := e.Retrieve([]float32{1}, AskRequest{MostRecent: true})
	if got := chunkIDs(result.Hits); len(got) != 2 {
		t.Fatalf("expected candidate set unchanged, got %v", got)
	}
}

func TestRetrieveMostRecentIgnoresUndatedGroups(t *testing.T) {
	meta := []vectorindex.Entry{
		entry("a", "AAPL", "8-K", "bogus", "u1"),
		entry("b", "AAPL", "8-K", "2023-05-01", "u2"),
	}
	e := newTestEngine(meta, []float32{0.9, 0.1}, []int{0, 1})

	result := e.Retrieve([]float32{1}, AskRequest{MostRecent: true})
	if got := chunkIDs(result.Hits); len(got) != 1 || got[0] != "b" {
		t.Fatalf("expected dated group [b], got %v", got)
	}
}

func TestRetrieveSortAndTruncate(t *testing.T) {
	meta := []vectorindex.Entry{
		entry("a", "AAPL", "8-K", "2024-01-01", "u1"),
		entry("b", "AAPL", "8-K", "2024-01-01", "u2"),
		entry("c", "AAPL", "8-K", "2024-01-01", "u3"),
		entry("d", "AAPL", "8-K", "2024-01-01", "u4"),
	}
	// b and c tie: retrieval order must be preserved between them.
	e := newTestEngine(meta, []float32{0.2, 0.8, 0.8, 0.9}, []int{0, 1, 2, 3})

	result := e.Retrieve([]float32{1}, AskRequest{MaxChunks: 3})
	want := []string{"d", "b", "c"}
	got := chunkIDs(result.Hits)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRetrieveReturnsAtMostMinOfMaxChunksAndCandidates(t *testing.T) {
	meta := []vectorindex.Entry{
		entry("a", "AAPL", "8-K", "2024-01-01", "u1"),
		entry("b", "AAPL", "8-K", "2024-01-01", "u2"),
	}
	e := newTestEngine(meta, []float32{0.9, 0.8}, []int{0, 1})

	if result := e.Retrieve([]float32{1}, AskRequest{MaxChunks: 10}); len(result.Hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(result.Hits))
	}
	if result := e.Retrieve([]float32{1}, AskRequest{MaxChunks: 1}); len(result.Hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(result.Hits))
	}
}

func TestRetrieveSourceListDedupedOrderedCapped(t *testing.T) {
	var meta []vectorindex.Entry
	var scores []float32
	var positions []int
	urls := []string{"u1", "u2", "u2", "", "u3", "u4", "u5", "u6", "u7", "u1"}
	for i, u := range urls {
		meta = append(meta, entry(string(rune('a'+i)), "AAPL", "8-K", "2024-01-01", u))
		scores = append(scores, float32(len(urls)-i)) // already descending
		positions = append(positions, i)
	}
	e := newTestEngine(meta, scores, positions)

	result := e.Retrieve([]float32{1}, AskRequest{K: len(urls), MaxChunks: len(urls)})
	want := []string{"u1", "u2", "u3", "u4", "u5"}
	if len(result.Sources) != len(want) {
		t.Fatalf("expected %v, got %v", want, result.Sources)
	}
	for i := range want {
		if result.Sources[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, result.Sources)
		}
	}
}

func TestAskNoMatchSkipsChatModel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	embedder := llm_mocks.NewMockEmbedder(ctrl)
	embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"anything new?"}).
		Return([][]float32{{1, 0}}, nil)

	// No expectation on the completer: any call fails the test.
	chat := llm_mocks.NewMockCompleter(ctrl)

	meta := []vectorindex.Entry{entry("a", "AAPL", "8-K", "2024-01-01", "u1")}
	engine := NewEngine(embedder, &stubSearcher{scores: []float32{0.9}, positions: []int{0}}, meta, chat)

	resp, err := engine.Ask(context.Background(), AskRequest{Question: "anything new?", Ticker: "TSLA"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.NoMatch {
		t.Fatal("expected NoMatch response")
	}
	if resp.Answer != NoMatchAnswer {
		t.Fatalf("expected no-match answer, got %q", resp.Answer)
	}
}

func TestAskGroundsPromptInRetrievedChunks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	embedder := llm_mocks.NewMockEmbedder(ctrl)
	embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).
		Return([][]float32{{1, 0}}, nil)

	chat := llm_mocks.NewMockCompleter(ctrl)
	chat.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, userPrompt string) (string, error) {
			if !strings.Contains(userPrompt, "text of a") {
				t.Errorf("prompt missing chunk text: %q", userPrompt)
			}
			if !strings.Contains(userPrompt, "[AAPL | 8-K | 2024-01-01]") {
				t.Errorf("prompt missing chunk header: %q", userPrompt)
			}
			return "the answer", nil
		})

	meta := []vectorindex.Entry{entry("a", "AAPL", "8-K", "2024-01-01", "u1")}
	engine := NewEngine(embedder, &stubSearcher{scores: []float32{0.9}, positions: []int{0}}, meta, chat)

	resp, err := engine.Ask(context.Background(), AskRequest{Question: "what happened?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Answer != "the answer" {
		t.Fatalf("unexpected answer %q", resp.Answer)
	}
	if len(resp.Sources) != 1 || resp.Sources[0] != "u1" {
		t.Fatalf("unexpected sources %v", resp.Sources)
	}
}
