package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jfb-hart/lead-command/internal/export"
)

var (
	enrichInput  string
	enrichOutput string
	enrichScrape bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fill in missing contact emails for a previously exported lead CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("enrich"); err != nil {
			return err
		}

		f, err := os.Open(enrichInput)
		if err != nil {
			return eris.Wrapf(err, "open %s", enrichInput)
		}
		leads, city, err := export.ReadLeadsCSV(f)
		f.Close()
		if err != nil {
			return err
		}

		missing := 0
		for _, lead := range leads {
			if lead.Email == "" {
				missing++
			}
		}
		zap.L().Info("enriching leads",
			zap.Int("total", len(leads)),
			zap.Int("missing_email", missing),
		)

		enricher := buildEnricher(enrichScrape)
		leads = enricher.EnrichEmails(ctx, leads)
		if enrichScrape {
			leads = enricher.ScrapeContacts(ctx, leads)
		}

		output := enrichOutput
		if output == "" {
			output = enrichInput
		}
		out, err := os.Create(output)
		if err != nil {
			return eris.Wrapf(err, "create %s", output)
		}
		defer out.Close()
		if err := export.WriteLeadsCSV(out, leads, city); err != nil {
			return err
		}

		found := 0
		for _, lead := range leads {
			if lead.Email != "" {
				found++
			}
		}
		fmt.Printf("Enriched %d leads, %d now have emails, wrote %s\n", len(leads), found, output)
		return nil
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichInput, "input", "", "lead CSV to enrich (required)")
	enrichCmd.Flags().StringVar(&enrichOutput, "output", "", "output path (defaults to overwriting the input)")
	enrichCmd.Flags().BoolVar(&enrichScrape, "scrape", false, "also scrape websites for emails and owner names")
	_ = enrichCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(enrichCmd)
}
