package cli

import (
	"github.com/spf13/cobra"

	"secbrief/internal/indexer"
	"secbrief/internal/llm"
)

var (
	indexChunksPath  string
	updateChunksPath string
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the vector index and metadata store from scratch",
	RunE:  runIndex,
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Append new chunks to an existing index",
	RunE:  runUpdate,
}

func init() {
	indexCmd.Flags().StringVar(&indexChunksPath, "chunks", "", "chunks JSONL path (default from CHUNKS_PATH)")
	updateCmd.Flags().StringVar(&updateChunksPath, "chunks", "", "chunks JSONL path (default from CHUNKS_PATH)")
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(updateCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if err := cfg.RequireOpenAIKey(); err != nil {
		return err
	}

	chunksPath := cfg.ChunksPath
	if indexChunksPath != "" {
		chunksPath = indexChunksPath
	}

	embedder := llm.NewEmbeddingsClient(cfg.OpenAIAPIKey, cfg.EmbedModel)
	pipeline := indexer.NewPipeline(embedder, cfg.IndexPath, cfg.MetaPath)

	n, err := pipeline.Build(cmd.Context(), chunksPath)
	if err != nil {
		return err
	}

	cmd.Printf("Indexed %d chunks\n", n)
	cmd.Printf("Index: %s\nMetadata: %s\n", cfg.IndexPath, cfg.MetaPath)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if err := cfg.RequireOpenAIKey(); err != nil {
		return err
	}

	chunksPath := cfg.ChunksPath
	if updateChunksPath != "" {
		chunksPath = updateChunksPath
	}

	embedder := llm.NewEmbeddingsClient(cfg.OpenAIAPIKey, cfg.EmbedModel)
	pipeline := indexer.NewPipeline(embedder, cfg.IndexPath, cfg.MetaPath)

	n, err := pipeline.Update(cmd.Context(), chunksPath)
	if err != nil {
		return err
	}

	if n == 0 {
		cmd.Println("No new chunks to add. Index is up to date.")
	} else {
		cmd.Printf("Added %d new chunks\n", n)
	}
	return nil
}
