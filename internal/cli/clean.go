package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"secbrief/internal/cleaner"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Extract plain text from fetched filing HTML",
	RunE:  runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, filings, err := openFilingStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	pending, err := filings.ListUncleaned(ctx)
	if err != nil {
		return err
	}

	cleaned, skipped := 0, 0
	for _, filing := range pending {
		text, ok := cleaner.Clean(filing.RawHTML)
		if !ok {
			slog.WarnContext(ctx, "filing too short after cleaning, skipping", "id", filing.ID)
			skipped++
			continue
		}
		if err := filings.SetCleanText(ctx, filing.ID, text); err != nil {
			return err
		}
		cleaned++
	}

	cmd.Printf("Cleaned %d filings (%d skipped)\n", cleaned, skipped)
	return nil
}
