package storage

import "time"

// FilingRecord represents one fetched SEC filing document.
// ID format: {TICKER}_{accession}_{primaryDoc}.
type FilingRecord struct {
	ID         string
	Ticker     string
	DocType    string // EDGAR form type, e.g. "8-K"
	CIK        string // zero-padded 10-digit CIK
	Accession  string
	FilingDate string // YYYY-MM-DD, may be empty
	ReportDate string // YYYY-MM-DD, may be empty
	URL        string
	FetchedAt  time.Time
	RawHTML    string
	CleanText  string // empty until the clean stage has run
}
