package cli

import (
	"github.com/spf13/cobra"

	"secbrief/internal/rag"
)

var (
	askK          int
	askTicker     string
	askDocType    string
	askMostRecent bool
	askMaxChunks  int
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question grounded in the indexed filings",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().IntVar(&askK, "k", rag.DefaultK, "candidates to retrieve before filtering")
	askCmd.Flags().StringVar(&askTicker, "ticker", "", "restrict to one ticker, e.g. AMZN")
	askCmd.Flags().StringVar(&askDocType, "doc-type", "", "restrict to one form type, e.g. 8-K")
	askCmd.Flags().BoolVar(&askMostRecent, "most-recent", false, "keep only the most recent filing after filtering")
	askCmd.Flags().IntVar(&askMaxChunks, "max-chunks", rag.DefaultMaxChunks, "chunks to include in the answer context")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	engine, _, err := newEngine()
	if err != nil {
		return err
	}

	resp, err := engine.Ask(cmd.Context(), rag.AskRequest{
		Question:   args[0],
		Ticker:     askTicker,
		DocType:    askDocType,
		MostRecent: askMostRecent,
		K:          askK,
		MaxChunks:  askMaxChunks,
	})
	if err != nil {
		return err
	}

	cmd.Println("\n=== Answer ===")
	cmd.Println()
	cmd.Println(resp.Answer)

	if len(resp.Sources) > 0 {
		cmd.Println("\n=== Sources (top hits) ===")
		for _, src := range resp.Sources {
			cmd.Println("-", src)
		}
	}
	return nil
}
