package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_filing_store.go -package=mocks secbrief/internal/storage FilingStore

import (
	"context"
	"database/sql"
	"fmt"
)

// FilingStore defines the interface for filing storage operations.
type FilingStore interface {
	// Upsert inserts a filing or replaces an existing one with the same ID.
	Upsert(ctx context.Context, filing *FilingRecord) error
	// GetByID gets a filing by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*FilingRecord, error)
	// ListUncleaned returns filings that have no clean text yet, ordered by ID.
	ListUncleaned(ctx context.Context) ([]*FilingRecord, error)
	// ListCleaned returns filings with clean text, ordered by ID.
	ListCleaned(ctx context.Context) ([]*FilingRecord, error)
	// SetCleanText stores the cleaned text for a filing.
	SetCleanText(ctx context.Context, id, text string) error
}

// FilingRepo provides methods for filing operations.
// It implements the FilingStore interface.
type FilingRepo struct {
	db *sql.DB
}

// NewFilingRepo creates a new FilingRepo.
func NewFilingRepo(db *sql.DB) *FilingRepo {
	return &FilingRepo{db: db}
}

// Upsert inserts a filing or replaces an existing one with the same ID.
// Re-fetching a filing refreshes its raw HTML and clears any stale clean text.
func (r *FilingRepo) Upsert(ctx context.Context, filing *FilingRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO filings (id, ticker, doc_type, cik, accession, filing_date, report_date, url, fetched_at, raw_html, clean_text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
		 ON CONFLICT(id) DO UPDATE SET
			fetched_at = excluded.fetched_at,
			raw_html = excluded.raw_html,
			clean_text = NULL`,
		filing.ID, filing.Ticker, filing.DocType, filing.CIK, filing.Accession,
		filing.FilingDate, filing.ReportDate, filing.URL, filing.FetchedAt, filing.RawHTML,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert filing: %w", err)
	}
	return nil
}

// GetByID gets a filing by its ID. Returns ErrNotFound if not found.
func (r *FilingRepo) GetByID(ctx context.Context, id string) (*FilingRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, ticker, doc_type, cik, accession, filing_date, report_date, url, fetched_at, raw_html, COALESCE(clean_text, '')
		 FROM filings WHERE id = ?`, id)

	filing, err := scanFiling(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query filing: %w", err)
	}
	return filing, nil
}

// ListUncleaned returns filings that have no clean text yet, ordered by ID.
func (r *FilingRepo) ListUncleaned(ctx context.Context) ([]*FilingRecord, error) {
	return r.list(ctx, "clean_text IS NULL OR clean_text = ''")
}

// ListCleaned returns filings with clean text, ordered by ID. Chunking and
// indexing read from this list, so the order fixes chunk emission order.
func (r *FilingRepo) ListCleaned(ctx context.Context) ([]*FilingRecord, error) {
	return r.list(ctx, "clean_text IS NOT NULL AND clean_text != ''")
}

// SetCleanText stores the cleaned text for a filing.
func (r *FilingRepo) SetCleanText(ctx context.Context, id, text string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE filings SET clean_text = ? WHERE id = ?", text, id)
	if err != nil {
		return fmt.Errorf("failed to set clean text: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FilingRepo) list(ctx context.Context, where string) ([]*FilingRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, ticker, doc_type, cik, accession, filing_date, report_date, url, fetched_at, raw_html, COALESCE(clean_text, '')
		 FROM filings WHERE `+where+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query filings: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var filings []*FilingRecord
	for rows.Next() {
		filing, err := scanFiling(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan filing: %w", err)
		}
		filings = append(filings, filing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return filings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFiling(row rowScanner) (*FilingRecord, error) {
	var f FilingRecord
	err := row.Scan(&f.ID, &f.Ticker, &f.DocType, &f.CIK, &f.Accession,
		&f.FilingDate, &f.ReportDate, &f.URL, &f.FetchedAt, &f.RawHTML, &f.CleanText)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
