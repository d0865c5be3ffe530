package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var historyClear bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or clear saved searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if historyClear {
			if err := st.ClearHistory(ctx); err != nil {
				return eris.Wrap(err, "clear history")
			}
			fmt.Println("Search history cleared")
			return nil
		}

		history, err := st.History(ctx)
		if err != nil {
			return eris.Wrap(err, "load history")
		}
		if len(history) == 0 {
			fmt.Println("No saved searches")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SAVED AT\tCITY\tLEADS")
		for _, entry := range history {
			fmt.Fprintf(tw, "%s\t%s\t%d\n",
				entry.SavedAt.Local().Format("2006-01-02 15:04"), entry.City, entry.LeadCount)
		}
		return tw.Flush()
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete all saved searches")
	rootCmd.AddCommand(historyCmd)
}
