// Package report renders the daily brief: a fixed set of per-ticker questions
// answered over the freshly updated index.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"secbrief/internal/rag"
)

// Question is one entry of the daily brief.
type Question struct {
	Title   string
	Text    string
	Ticker  string
	DocType string
}

// Retrieval settings for brief questions: over-fetch hard so the ticker and
// form filters still leave a pool, then keep a slightly larger context.
const (
	briefK         = 80
	briefMaxChunks = 10
)

// DefaultQuestions builds the standard brief question set, one most-recent-8-K
// question per ticker.
func DefaultQuestions(tickers []string) []Question {
	questions := make([]Question, 0, len(tickers))
	for _, ticker := range tickers {
		questions = append(questions, Question{
			Title:   fmt.Sprintf("Market-moving disclosures (%s)", ticker),
			Text:    fmt.Sprintf("What did %s disclose in its most recent 8-K?", ticker),
			Ticker:  ticker,
			DocType: "8-K",
		})
	}
	return questions
}

// Generator renders daily briefs to text files.
type Generator struct {
	engine rag.Engine
	outDir string
	logger *slog.Logger
}

// NewGenerator creates a new Generator writing reports under outDir.
func NewGenerator(engine rag.Engine, outDir string) *Generator {
	return &Generator{
		engine: engine,
		outDir: outDir,
		logger: slog.Default(),
	}
}

// Run answers each question and writes the brief to
// {outDir}/daily_{YYYY-MM-DD}.txt. A failed question becomes an error line in
// the report rather than aborting the run. Returns the report path.
func (g *Generator) Run(ctx context.Context, questions []Question) (string, error) {
	today := time.Now().Format("2006-01-02")

	var b strings.Builder
	fmt.Fprintf(&b, "Daily Financial Brief — %s\n\n", today)

	for _, q := range questions {
		b.WriteString(strings.Repeat("=", 80) + "\n")
		b.WriteString(q.Title + "\n")
		b.WriteString(strings.Repeat("-", 80) + "\n")

		resp, err := g.engine.Ask(ctx, rag.AskRequest{
			Question:   q.Text,
			Ticker:     q.Ticker,
			DocType:    q.DocType,
			MostRecent: true,
			K:          briefK,
			MaxChunks:  briefMaxChunks,
		})
		if err != nil {
			g.logger.WarnContext(ctx, "brief question failed", "title", q.Title, "error", err)
			fmt.Fprintf(&b, "(failed to answer: %v)\n\n", err)
			continue
		}

		b.WriteString(resp.Answer + "\n")
		if len(resp.Sources) > 0 {
			fmt.Fprintf(&b, "Source: %s\n", resp.Sources[0])
		}
		b.WriteString("\n")
	}

	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	path := filepath.Join(g.outDir, fmt.Sprintf("daily_%s.txt", today))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	g.logger.InfoContext(ctx, "report written", "path", path, "questions", len(questions))
	return path, nil
}
