package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/jfb-hart/lead-command/internal/export"
	"github.com/jfb-hart/lead-command/internal/model"
	"github.com/jfb-hart/lead-command/internal/search"
)

var (
	searchCity         string
	searchFilterChains bool
	searchEnrich       bool
	searchScrape       bool
	searchFormat       string
	searchOutput       string
	searchSave         bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search a city for coating and flooring contractor leads",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("search"); err != nil {
			return err
		}
		if searchEnrich {
			if err := cfg.Validate("enrich"); err != nil {
				return err
			}
		}

		agg := buildAggregator()
		leads, err := agg.Search(ctx, searchCity, search.Options{FilterChains: searchFilterChains})
		if err != nil {
			return eris.Wrap(err, "search leads")
		}

		if searchEnrich {
			enricher := buildEnricher(false)
			leads = enricher.EnrichEmails(ctx, leads)
		}
		if searchScrape {
			enricher := buildEnricher(true)
			leads = enricher.ScrapeContacts(ctx, leads)
		}

		if searchSave {
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			if _, err := st.SaveSearch(ctx, searchCity, leads); err != nil {
				return eris.Wrap(err, "save search")
			}
		}

		return writeLeads(leads, searchCity, searchFormat, searchOutput)
	},
}

func writeLeads(leads []model.Lead, city, format, output string) error {
	switch format {
	case "table":
		return printLeadTable(os.Stdout, leads)
	case "csv":
		if output == "" {
			output = export.CSVFileName(city)
		}
		f, err := os.Create(output)
		if err != nil {
			return eris.Wrapf(err, "create %s", output)
		}
		defer f.Close()
		if err := export.WriteLeadsCSV(f, leads, city); err != nil {
			return err
		}
		fmt.Printf("Wrote %d leads to %s\n", len(leads), output)
		return nil
	case "xlsx":
		if output == "" {
			output = "jfb-leads.xlsx"
		}
		if err := export.WriteLeadsXLSX(output, leads, city); err != nil {
			return err
		}
		fmt.Printf("Wrote %d leads to %s\n", len(leads), output)
		return nil
	default:
		return eris.Errorf("unknown format %q (use table, csv, or xlsx)", format)
	}
}

func printLeadTable(w io.Writer, leads []model.Lead) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCOMPANY\tTYPE\tRATING\tTIER\tEMAIL\tPHONE")
	for i, lead := range leads {
		email := lead.Email
		if email == "" {
			email = "-"
		}
		phone := lead.Phone
		if phone == "" {
			phone = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d of 5\t%s\t%s\t%s\n",
			i+1, lead.Name, lead.BusinessType, lead.FitRating, lead.PriorityTier, email, phone)
	}
	return tw.Flush()
}

func init() {
	searchCmd.Flags().StringVar(&searchCity, "city", "", "city to search, e.g. \"Nashville, TN\" (required)")
	searchCmd.Flags().BoolVar(&searchFilterChains, "filter-chains", true, "exclude franchise and chain businesses")
	searchCmd.Flags().BoolVar(&searchEnrich, "enrich", false, "look up contact emails by domain")
	searchCmd.Flags().BoolVar(&searchScrape, "scrape", false, "scrape websites for emails and owner names")
	searchCmd.Flags().StringVar(&searchFormat, "format", "table", "output format: table, csv, or xlsx")
	searchCmd.Flags().StringVar(&searchOutput, "output", "", "output file path (csv/xlsx formats)")
	searchCmd.Flags().BoolVar(&searchSave, "save", false, "save results to local history")
	_ = searchCmd.MarkFlagRequired("city")
	rootCmd.AddCommand(searchCmd)
}
