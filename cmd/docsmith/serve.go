package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/artpar/docsmith/config"
)

var (
	servePort   int
	serveFolder string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview generated documentation locally",
	Long: `Serve the generated documentation folder over HTTP.

Examples:
  docsmith serve
  docsmith serve --port 9000 --folder build/docs`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8000, "port to listen on")
	serveCmd.Flags().StringVar(&serveFolder, "folder", config.DefaultOutput, "documentation folder to serve")
}

func runServe(cmd *cobra.Command, args []string) error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Handle("/*", http.FileServer(http.Dir(serveFolder)))

	addr := fmt.Sprintf("127.0.0.1:%d", servePort)
	logger.Info().
		Str("addr", "http://"+addr).
		Str("folder", serveFolder).
		Msg("serving documentation")

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return srv.ListenAndServe()
}
