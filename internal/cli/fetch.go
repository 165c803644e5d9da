package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"secbrief/internal/edgar"
)

var (
	fetchTickers string
	fetchForms   string
	fetchLimit   int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download recent SEC filings into the local store",
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchTickers, "tickers", "", "comma-separated tickers (default from TICKERS)")
	fetchCmd.Flags().StringVar(&fetchForms, "forms", "", "comma-separated form types (default from FORMS)")
	fetchCmd.Flags().IntVar(&fetchLimit, "limit", 0, "max filings per ticker (default from FETCH_LIMIT)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	tickers := cfg.Tickers
	if fetchTickers != "" {
		tickers = edgar.NormalizeTickers(strings.Split(fetchTickers, ","))
	}
	forms := cfg.Forms
	if fetchForms != "" {
		forms = edgar.NormalizeTickers(strings.Split(fetchForms, ","))
	}
	limit := cfg.FetchLimit
	if fetchLimit > 0 {
		limit = fetchLimit
	}

	db, filings, err := openFilingStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	client := edgar.NewClient(cfg.SECUserAgent, cfg.SECRateLimit)
	fetcher := edgar.NewFetcher(client, filings)

	saved, err := fetcher.FetchAll(cmd.Context(), tickers, forms, limit)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	cmd.Printf("Saved %d SEC filings\n", saved)
	return nil
}
