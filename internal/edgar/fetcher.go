package edgar

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"secbrief/internal/storage"
)

// Fetcher downloads recent filings for a set of tickers into the filing store.
type Fetcher struct {
	client  *Client
	filings storage.FilingStore
	logger  *slog.Logger
}

// NewFetcher creates a new Fetcher.
func NewFetcher(client *Client, filings storage.FilingStore) *Fetcher {
	return &Fetcher{
		client:  client,
		filings: filings,
		logger:  slog.Default(),
	}
}

// FetchAll fetches up to limit filings of the given form types per ticker and
// stores them. A limit of zero or less fetches nothing. Individual document
// failures are logged and skipped; only failures that make the whole run
// pointless (ticker map, store writes) abort. Returns the number of filings
// saved.
func (f *Fetcher) FetchAll(ctx context.Context, tickers, forms []string, limit int) (int, error) {
	if limit <= 0 {
		return 0, nil
	}

	tickerMap, err := f.client.TickerMap(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load ticker map: %w", err)
	}

	saved := 0
	for _, ticker := range NormalizeTickers(tickers) {
		cik10, ok := tickerMap[ticker]
		if !ok {
			f.logger.WarnContext(ctx, "no CIK found for ticker, skipping", "ticker", ticker)
			continue
		}

		n, err := f.fetchTicker(ctx, ticker, cik10, forms, limit)
		if err != nil {
			if ctx.Err() != nil {
				return saved, ctx.Err()
			}
			f.logger.WarnContext(ctx, "failed to fetch filings for ticker", "ticker", ticker, "error", err)
			continue
		}
		saved += n
	}

	f.logger.InfoContext(ctx, "fetch completed", "saved", saved, "tickers", len(tickers))
	return saved, nil
}

func (f *Fetcher) fetchTicker(ctx context.Context, ticker, cik10 string, forms []string, limit int) (int, error) {
	subs, err := f.client.Submissions(ctx, cik10)
	if err != nil {
		return 0, err
	}

	// Select the first limit matching filings up front; a failed download does
	// not pull in a replacement.
	recent := subs.Filings.Recent
	var idxs []int
	for i, form := range recent.Form {
		if slices.Contains(forms, form) {
			idxs = append(idxs, i)
			if len(idxs) == limit {
				break
			}
		}
	}

	saved := 0
	for _, i := range idxs {
		form := recent.Form[i]
		accession := at(recent.AccessionNumber, i)
		primaryDoc := at(recent.PrimaryDocument, i)
		if primaryDoc == "" {
			continue
		}

		docURL := f.client.FilingURL(cik10, accession, primaryDoc)
		rawHTML, err := f.client.FetchDocument(ctx, docURL)
		if err != nil {
			if ctx.Err() != nil {
				return saved, ctx.Err()
			}
			f.logger.WarnContext(ctx, "failed to fetch filing document", "url", docURL, "error", err)
			continue
		}

		filing := &storage.FilingRecord{
			ID:         fmt.Sprintf("%s_%s_%s", ticker, accession, primaryDoc),
			Ticker:     ticker,
			DocType:    form,
			CIK:        cik10,
			Accession:  accession,
			FilingDate: at(recent.FilingDate, i),
			ReportDate: at(recent.ReportDate, i),
			URL:        docURL,
			FetchedAt:  time.Now().UTC(),
			RawHTML:    rawHTML,
		}
		if err := f.filings.Upsert(ctx, filing); err != nil {
			return saved, fmt.Errorf("failed to store filing %s: %w", filing.ID, err)
		}
		saved++

		f.logger.DebugContext(ctx, "filing saved", "id", filing.ID, "form", form, "filing_date", filing.FilingDate)
	}

	return saved, nil
}

// NormalizeTickers uppercases and trims tickers, dropping empty entries.
func NormalizeTickers(tickers []string) []string {
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
