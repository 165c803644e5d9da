package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"secbrief/internal/cleaner"
	"secbrief/internal/edgar"
	"secbrief/internal/indexer"
	"secbrief/internal/llm"
	"secbrief/internal/report"
)

var (
	reportTickers string
	reportForms   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetch, reindex, and write the daily brief",
	Long: `Runs the full pipeline end to end: fetch recent filings, clean and chunk
them, append new chunks to the index, then answer the standard brief questions
and write the result to the report directory.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportTickers, "tickers", "", "comma-separated tickers (default from TICKERS)")
	reportCmd.Flags().StringVar(&reportForms, "forms", "8-K", "comma-separated form types to fetch")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	if err := cfg.RequireOpenAIKey(); err != nil {
		return err
	}
	ctx := cmd.Context()

	tickers := cfg.Tickers
	if reportTickers != "" {
		tickers = edgar.NormalizeTickers(strings.Split(reportTickers, ","))
	}
	forms := edgar.NormalizeTickers(strings.Split(reportForms, ","))

	db, filings, err := openFilingStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	// Fetch and clean.
	fetcher := edgar.NewFetcher(edgar.NewClient(cfg.SECUserAgent, cfg.SECRateLimit), filings)
	if _, err := fetcher.FetchAll(ctx, tickers, forms, cfg.FetchLimit); err != nil {
		return err
	}
	pending, err := filings.ListUncleaned(ctx)
	if err != nil {
		return err
	}
	for _, filing := range pending {
		text, ok := cleaner.Clean(filing.RawHTML)
		if !ok {
			continue
		}
		if err := filings.SetCleanText(ctx, filing.ID, text); err != nil {
			return err
		}
	}

	// Chunk and append to the index.
	chunker := indexer.NewChunker(indexer.WithChunkSize(cfg.ChunkSize), indexer.WithOverlap(cfg.ChunkOverlap))
	if _, err := indexer.ExportChunks(ctx, filings, chunker, cfg.ChunksPath); err != nil {
		return err
	}
	embedder := llm.NewEmbeddingsClient(cfg.OpenAIAPIKey, cfg.EmbedModel)
	pipeline := indexer.NewPipeline(embedder, cfg.IndexPath, cfg.MetaPath)
	if _, err := pipeline.Update(ctx, cfg.ChunksPath); err != nil {
		return err
	}

	engine, _, err := newEngine()
	if err != nil {
		return err
	}

	generator := report.NewGenerator(engine, cfg.ReportDir)
	path, err := generator.Run(ctx, report.DefaultQuestions(tickers))
	if err != nil {
		return err
	}

	cmd.Printf("Wrote report to %s\n", path)
	return nil
}
