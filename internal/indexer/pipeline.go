package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"secbrief/internal/llm"
	"secbrief/internal/vectorindex"
)

// Pipeline builds and incrementally updates the vector index and its
// metadata store. Both files are written only after every embedding batch has
// succeeded, so a failed run leaves the previous build intact.
type Pipeline struct {
	embedder  llm.Embedder
	indexPath string
	metaPath  string
	logger    *slog.Logger
}

// NewPipeline creates a new index pipeline.
func NewPipeline(embedder llm.Embedder, indexPath, metaPath string) *Pipeline {
	return &Pipeline{
		embedder:  embedder,
		indexPath: indexPath,
		metaPath:  metaPath,
		logger:    slog.Default(),
	}
}

// Build embeds every chunk in the JSONL file and writes a fresh index and
// metadata store, replacing any existing build. Vector i corresponds to
// metadata entry i.
func (p *Pipeline) Build(ctx context.Context, chunksPath string) (int, error) {
	entries, err := LoadChunks(chunksPath)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, fmt.Errorf("no chunks in %s: run chunk first", chunksPath)
	}

	vectors, err := p.embedEntries(ctx, entries)
	if err != nil {
		return 0, err
	}

	index := vectorindex.NewFlat(len(vectors[0]))
	if err := index.Add(vectors); err != nil {
		return 0, fmt.Errorf("failed to add vectors: %w", err)
	}

	if err := p.write(index, entries); err != nil {
		return 0, err
	}

	p.logger.InfoContext(ctx, "index built", "vectors", index.Len(), "dim", index.Dim(), "index", p.indexPath)
	return len(entries), nil
}

// Update embeds only chunks whose IDs are not yet in the metadata store and
// appends them to both the index and the store in the same order, preserving
// the positional correspondence. Returns the number of chunks added.
func (p *Pipeline) Update(ctx context.Context, chunksPath string) (int, error) {
	if _, err := os.Stat(p.indexPath); err != nil {
		return 0, fmt.Errorf("index file %s not found: run a full build first", p.indexPath)
	}
	if _, err := os.Stat(p.metaPath); err != nil {
		return 0, fmt.Errorf("metadata file %s not found: run a full build first", p.metaPath)
	}

	entries, err := LoadChunks(chunksPath)
	if err != nil {
		return 0, err
	}

	index, err := vectorindex.ReadFile(p.indexPath)
	if err != nil {
		return 0, err
	}
	meta, err := vectorindex.LoadMeta(p.metaPath)
	if err != nil {
		return 0, err
	}

	existing := make(map[string]struct{}, len(meta))
	for _, entry := range meta {
		existing[entry.ChunkID] = struct{}{}
	}

	var fresh []vectorindex.Entry
	for _, entry := range entries {
		if _, ok := existing[entry.ChunkID]; !ok {
			fresh = append(fresh, entry)
		}
	}

	if len(fresh) == 0 {
		p.logger.InfoContext(ctx, "no new chunks to add, index is up to date", "vectors", index.Len())
		return 0, nil
	}

	vectors, err := p.embedEntries(ctx, fresh)
	if err != nil {
		return 0, err
	}

	if err := index.Add(vectors); err != nil {
		return 0, fmt.Errorf("failed to append vectors: %w", err)
	}
	meta = append(meta, fresh...)

	if err := p.write(index, meta); err != nil {
		return 0, err
	}

	p.logger.InfoContext(ctx, "index updated", "added", len(fresh), "vectors", index.Len())
	return len(fresh), nil
}

// embedEntries embeds entry texts and L2-normalises the vectors, so inner
// product search equals cosine similarity.
func (p *Pipeline) embedEntries(ctx context.Context, entries []vectorindex.Entry) ([][]float32, error) {
	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = entry.Text
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(vectors) != len(entries) {
		return nil, fmt.Errorf("expected %d vectors, got %d", len(entries), len(vectors))
	}

	for _, v := range vectors {
		vectorindex.Normalize(v)
	}
	return vectors, nil
}

func (p *Pipeline) write(index *vectorindex.Flat, meta []vectorindex.Entry) error {
	if err := index.WriteFile(p.indexPath); err != nil {
		return err
	}
	if err := vectorindex.SaveMeta(p.metaPath, meta); err != nil {
		return err
	}
	return nil
}
