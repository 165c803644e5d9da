package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultSubmissionsBase = "https://data.sec.gov"
	defaultArchivesBase    = "https://www.sec.gov"
	defaultTickerMapURL    = "https://www.sec.gov/files/company_tickers.json"
)

// Client talks to SEC EDGAR. All requests carry the declared User-Agent the
// SEC requires and pass through a shared token-bucket rate limiter.
type Client struct {
	SubmissionsBase string
	ArchivesBase    string
	TickerMapURL    string

	userAgent  string
	limiter    *rate.Limiter
	httpClient *http.Client
}

// NewClient creates a new EDGAR client. perSec caps the sustained request rate.
func NewClient(userAgent string, perSec float64) *Client {
	if perSec <= 0 {
		perSec = 4.0
	}
	return &Client{
		SubmissionsBase: defaultSubmissionsBase,
		ArchivesBase:    defaultArchivesBase,
		TickerMapURL:    defaultTickerMapURL,
		userAgent:       userAgent,
		limiter:         rate.NewLimiter(rate.Limit(perSec), 1),
		httpClient:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// Accept-Encoding is left to the transport, which negotiates gzip and
	// decompresses transparently. Setting it manually would disable that and
	// hand raw gzip bytes to the decoders.
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// TickerMap fetches the SEC's ticker-to-CIK mapping. Keys are uppercase
// tickers, values are zero-padded 10-digit CIK strings.
func (c *Client) TickerMap(ctx context.Context) (map[string]string, error) {
	body, err := c.get(ctx, c.TickerMapURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ticker map: %w", err)
	}

	var raw map[string]struct {
		CIK    int64  `json:"cik_str"`
		Ticker string `json:"ticker"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode ticker map: %w", err)
	}

	mapping := make(map[string]string, len(raw))
	for _, row := range raw {
		ticker := strings.ToUpper(row.Ticker)
		if ticker != "" {
			mapping[ticker] = fmt.Sprintf("%010d", row.CIK)
		}
	}
	return mapping, nil
}

// Submissions fetches the recent-filings feed for a CIK.
func (c *Client) Submissions(ctx context.Context, cik10 string) (*Submissions, error) {
	url := fmt.Sprintf("%s/submissions/CIK%s.json", c.SubmissionsBase, cik10)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions for CIK %s: %w", cik10, err)
	}

	var subs Submissions
	if err := json.Unmarshal(body, &subs); err != nil {
		return nil, fmt.Errorf("failed to decode submissions for CIK %s: %w", cik10, err)
	}
	return &subs, nil
}

// FetchDocument downloads a filing's primary document.
func (c *Client) FetchDocument(ctx context.Context, url string) (string, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FilingURL builds the archive URL for a filing's primary document. The CIK
// loses its leading zeros and the accession number its dashes.
func (c *Client) FilingURL(cik10, accession, primaryDoc string) string {
	cik, err := strconv.Atoi(cik10)
	cikNoLead := cik10
	if err == nil {
		cikNoLead = strconv.Itoa(cik)
	}
	accessionNoDash := strings.ReplaceAll(accession, "-", "")
	return fmt.Sprintf("%s/Archives/edgar/data/%s/%s/%s", c.ArchivesBase, cikNoLead, accessionNoDash, primaryDoc)
}
