package indexer

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	llm_mocks "secbrief/internal/llm/mocks"
	"secbrief/internal/vectorindex"
)

func testEntry(chunkID, text string) vectorindex.Entry {
	return vectorindex.Entry{
		ChunkID: chunkID,
		Text:    text,
		Meta: vectorindex.Meta{
			ID:     "f1",
			Ticker: "AAPL",
			URL:    "https://example.com/f1",
			Source: "SEC_EDGAR",
		},
	}
}

// fakeEmbeddings returns one 2-dim vector per input text.
func fakeEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{float32(i + 1), 1}
	}
	return vectors, nil
}

func TestPipelineBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	chunksPath := filepath.Join(dir, "chunks.jsonl")
	indexPath := filepath.Join(dir, "sec.index")
	metaPath := filepath.Join(dir, "sec_meta.json")

	entries := []vectorindex.Entry{
		testEntry("f1::chunk_0", "first chunk"),
		testEntry("f1::chunk_1", "second chunk"),
	}
	if err := WriteChunksFile(chunksPath, entries); err != nil {
		t.Fatalf("WriteChunksFile: %v", err)
	}

	embedder := llm_mocks.NewMockEmbedder(ctrl)
	embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"first chunk", "second chunk"}).
		DoAndReturn(fakeEmbeddings)

	p := NewPipeline(embedder, indexPath, metaPath)
	added, err := p.Build(context.Background(), chunksPath)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if added != 2 {
		t.Fatalf("expected 2 chunks indexed, got %d", added)
	}

	index, err := vectorindex.ReadFile(indexPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	meta, err := vectorindex.LoadMeta(metaPath)
	if err != nil {
		t.Fatalf("LoadMeta: %v", err)
	}
	if index.Len() != len(meta) {
		t.Fatalf("index has %d vectors but metadata has %d entries", index.Len(), len(meta))
	}
	if meta[0].ChunkID != "f1::chunk_0" || meta[1].ChunkID != "f1::chunk_1" {
		t.Fatalf("metadata order not preserved: %+v", meta)
	}
}

func TestPipelineBuildEmptyChunksFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	chunksPath := filepath.Join(dir, "chunks.jsonl")
	if err := WriteChunksFile(chunksPath, nil); err != nil {
		t.Fatalf("WriteChunksFile: %v", err)
	}

	p := NewPipeline(llm_mocks.NewMockEmbedder(ctrl), filepath.Join(dir, "i"), filepath.Join(dir, "m"))
	if _, err := p.Build(context.Background(), chunksPath); err == nil {
		t.Fatal("expected error for empty chunks file")
	}
}

func TestPipelineUpdateAppendsOnlyNewChunks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	chunksPath := filepath.Join(dir, "chunks.jsonl")
	indexPath := filepath.Join(dir, "sec.index")
	metaPath := filepath.Join(dir, "sec_meta.json")

	initial := []vectorindex.Entry{testEntry("f1::chunk_0", "first chunk")}
	if err := WriteChunksFile(chunksPath, initial); err != nil {
		t.Fatalf("WriteChunksFile: %v", err)
	}

	embedder := llm_mocks.NewMockEmbedder(ctrl)
	embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"first chunk"}).
		DoAndReturn(fakeEmbeddings)

	p := NewPipeline(embedder, indexPath, metaPath)
	if _, err := p.Build(context.Background(), chunksPath); err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Re-export with one extra chunk. Only the new one gets embedded.
	updated := append(initial, testEntry("f2::chunk_0", "new filing chunk"))
	if err := WriteChunksFile(chunksPath, updated); err != nil {
		t.Fatalf("WriteChunksFile: %v", err)
	}
	embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"new filing chunk"}).
		DoAndReturn(fakeEmbeddings)

	added, err := p.Update(context.Background(), chunksPath)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if added != 1 {
		t.Fatalf("expected 1 chunk added, got %d", added)
	}

	index, err := vectorindex.ReadFile(indexPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	meta, err := vectorindex.LoadMeta(metaPath)
	if err != nil {
		t.Fatalf("LoadMeta: %v", err)
	}
	if index.Len() != 2 || len(meta) != 2 {
		t.Fatalf("expected 2 vectors and 2 entries, got %d/%d", index.Len(), len(meta))
	}
	if meta[1].ChunkID != "f2::chunk_0" {
		t.Fatalf("new entry must append at the end, got %+v", meta)
	}
}

func TestPipelineUpdateNoNewChunksIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	chunksPath := filepath.Join(dir, "chunks.jsonl")
	indexPath := filepath.Join(dir, "sec.index")
	metaPath := filepath.Join(dir, "sec_meta.json")

	entries := []vectorindex.Entry{testEntry("f1::chunk_0", "first chunk")}
	if err := WriteChunksFile(chunksPath, entries); err != nil {
		t.Fatalf("WriteChunksFile: %v", err)
	}

	embedder := llm_mocks.NewMockEmbedder(ctrl)
	embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).DoAndReturn(fakeEmbeddings)

	p := NewPipeline(embedder, indexPath, metaPath)
	if _, err := p.Build(context.Background(), chunksPath); err != nil {
		t.Fatalf("Build: %v", err)
	}

	// No second EmbedTexts expectation: an embedding call would fail the test.
	added, err := p.Update(context.Background(), chunksPath)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if added != 0 {
		t.Fatalf("expected no-op, got %d added", added)
	}
}

func TestPipelineUpdateRequiresExistingBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	p := NewPipeline(llm_mocks.NewMockEmbedder(ctrl),
		filepath.Join(dir, "sec.index"), filepath.Join(dir, "sec_meta.json"))

	if _, err := p.Update(context.Background(), filepath.Join(dir, "chunks.jsonl")); err == nil {
		t.Fatal("expected error when no build exists")
	}
}
