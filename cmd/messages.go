package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/jfb-hart/lead-command/internal/export"
	"github.com/jfb-hart/lead-command/internal/message"
	"github.com/jfb-hart/lead-command/internal/model"
)

var (
	messagesInput  string
	messagesOutput string
)

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Generate tailored outreach messages for leads",
	Long:  "Renders an outreach letter per lead with a line tailored to its business type. Reads a lead CSV, or the last saved search when --input is omitted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var leads []model.Lead
		if messagesInput != "" {
			f, err := os.Open(messagesInput)
			if err != nil {
				return eris.Wrapf(err, "open %s", messagesInput)
			}
			leads, _, err = export.ReadLeadsCSV(f)
			f.Close()
			if err != nil {
				return err
			}
		} else {
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			last, err := st.LastSearch(ctx)
			if err != nil {
				return eris.Wrap(err, "load last search")
			}
			if last == nil {
				return eris.New("no saved search; run search --save first or pass --input")
			}
			leads = last.Leads
		}

		if len(leads) == 0 {
			return eris.New("no leads to generate messages for")
		}

		msgs := message.NewGenerator(nil).GenerateAll(leads)

		var w io.Writer = os.Stdout
		if messagesOutput != "" {
			f, err := os.Create(messagesOutput)
			if err != nil {
				return eris.Wrapf(err, "create %s", messagesOutput)
			}
			defer f.Close()
			w = f
		}
		if err := export.WriteMessagesTxt(w, msgs); err != nil {
			return err
		}
		if messagesOutput != "" {
			fmt.Printf("Wrote %d messages to %s\n", len(msgs), messagesOutput)
		}
		return nil
	},
}

func init() {
	messagesCmd.Flags().StringVar(&messagesInput, "input", "", "lead CSV to generate messages from")
	messagesCmd.Flags().StringVar(&messagesOutput, "output", "", "write messages to this file instead of stdout")
	rootCmd.AddCommand(messagesCmd)
}
