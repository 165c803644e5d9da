// Package cli wires the pipeline stages into cobra commands.
package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"secbrief/internal/config"
	"secbrief/internal/llm"
	"secbrief/internal/rag"
	"secbrief/internal/storage"
	"secbrief/internal/vectorindex"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "secbrief",
	Short: "Retrieval-augmented briefs over SEC filings",
	Long: `secbrief fetches SEC EDGAR filings for a set of tickers, cleans and chunks
them, maintains a local vector index over chunk embeddings, and answers
questions grounded in the retrieved filing text.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		configureLogging(cfg)
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func configureLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// openFilingStore opens the sqlite database and runs migrations. The caller
// closes the returned DB.
func openFilingStore() (*sql.DB, storage.FilingStore, error) {
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, storage.NewFilingRepo(db), nil
}

// newEngine loads the persisted index and metadata store and assembles the
// RAG engine. Missing files are fatal: there is nothing to search.
func newEngine() (rag.Engine, int, error) {
	if err := cfg.RequireOpenAIKey(); err != nil {
		return nil, 0, err
	}

	index, err := vectorindex.ReadFile(cfg.IndexPath)
	if err != nil {
		return nil, 0, fmt.Errorf("cannot load index (run `secbrief index` first): %w", err)
	}
	meta, err := vectorindex.LoadMeta(cfg.MetaPath)
	if err != nil {
		return nil, 0, fmt.Errorf("cannot load metadata (run `secbrief index` first): %w", err)
	}
	if index.Len() != len(meta) {
		return nil, 0, fmt.Errorf("index has %d vectors but metadata has %d entries; rebuild with `secbrief index`", index.Len(), len(meta))
	}

	embedder := llm.NewEmbeddingsClient(cfg.OpenAIAPIKey, cfg.EmbedModel)
	chat := llm.NewChatClient(cfg.OpenAIAPIKey, cfg.ChatModel)
	return rag.NewEngine(embedder, index, meta, chat), index.Len(), nil
}
