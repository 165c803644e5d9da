package indexer

import (
	"context"
	"fmt"
	"log/slog"

	"secbrief/internal/storage"
	"secbrief/internal/vectorindex"
)

// ExportChunks chunks every cleaned filing in the store and writes the result
// as JSONL at path. Chunk IDs are {filingID}::chunk_{ordinal}, the ordinal
// counting emitted chunks per filing. Returns the number of chunks written.
func ExportChunks(ctx context.Context, filings storage.FilingStore, chunker *Chunker, path string) (int, error) {
	logger := slog.Default()

	cleaned, err := filings.ListCleaned(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list cleaned filings: %w", err)
	}
	if len(cleaned) == 0 {
		return 0, fmt.Errorf("no cleaned filings found: run clean first")
	}

	var entries []vectorindex.Entry
	for _, filing := range cleaned {
		pieces := chunker.Split(filing.CleanText)
		for i, text := range pieces {
			entries = append(entries, vectorindex.Entry{
				ChunkID: fmt.Sprintf("%s::chunk_%d", filing.ID, i),
				Text:    text,
				Meta: vectorindex.Meta{
					ID:         filing.ID,
					Ticker:     filing.Ticker,
					DocType:    filing.DocType,
					FilingDate: filing.FilingDate,
					URL:        filing.URL,
					Source:     "SEC_EDGAR",
				},
			})
		}
		logger.DebugContext(ctx, "filing chunked", "id", filing.ID, "chunks", len(pieces))
	}

	if err := WriteChunksFile(path, entries); err != nil {
		return 0, err
	}

	logger.InfoContext(ctx, "chunks written", "path", path, "chunks", len(entries), "filings", len(cleaned))
	return len(entries), nil
}
