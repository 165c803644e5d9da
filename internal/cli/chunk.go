package cli

import (
	"github.com/spf13/cobra"

	"secbrief/internal/indexer"
)

var (
	chunkSize    int
	chunkOverlap int
	chunkOut     string
)

var chunkCmd = &cobra.Command{
	Use:   "chunk",
	Short: "Split cleaned filings into fixed-size chunks (JSONL)",
	RunE:  runChunk,
}

func init() {
	chunkCmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "chunk window in characters (default from CHUNK_SIZE)")
	chunkCmd.Flags().IntVar(&chunkOverlap, "overlap", -1, "overlap between chunks in characters (default from CHUNK_OVERLAP)")
	chunkCmd.Flags().StringVar(&chunkOut, "out", "", "output JSONL path (default from CHUNKS_PATH)")
	rootCmd.AddCommand(chunkCmd)
}

func runChunk(cmd *cobra.Command, args []string) error {
	size := cfg.ChunkSize
	if chunkSize > 0 {
		size = chunkSize
	}
	overlap := cfg.ChunkOverlap
	if chunkOverlap >= 0 {
		overlap = chunkOverlap
	}
	out := cfg.ChunksPath
	if chunkOut != "" {
		out = chunkOut
	}

	db, filings, err := openFilingStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	chunker := indexer.NewChunker(indexer.WithChunkSize(size), indexer.WithOverlap(overlap))
	n, err := indexer.ExportChunks(cmd.Context(), filings, chunker, out)
	if err != nil {
		return err
	}

	cmd.Printf("Wrote %d chunks to %s\n", n, out)
	return nil
}
