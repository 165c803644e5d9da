package cli

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"secbrief/internal/server"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API over the built index",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (default from API_PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	engine, indexSize, err := newEngine()
	if err != nil {
		return err
	}

	port := cfg.APIPort
	if servePort != "" {
		port = servePort
	}

	router := server.NewRouter(server.Deps{Engine: engine, IndexSize: indexSize})

	addr := ":" + port
	slog.Info("API server listening", "addr", addr, "chunks", indexSize)
	if err := http.ListenAndServe(addr, router); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
