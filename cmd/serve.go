package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jfb-hart/lead-command/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for lead search, email lookup, and scraping",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		var srvSearcher server.Searcher
		if cfg.OpenWebNinja.Key != "" {
			srvSearcher = buildAggregator()
		}
		var srvEmails server.EmailLookup
		if cfg.Hunter.Key != "" {
			srvEmails = buildEnricher(false)
		}

		srv := server.New(srvSearcher, srvEmails, buildScraper(), cfg.Search.FilterChains)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		return srv.ListenAndServe(ctx, port)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (defaults to config)")
	rootCmd.AddCommand(serveCmd)
}
