package main

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/roster-cli/internal/contact"
)

var parseName bool

var parseCmd = &cobra.Command{
	Use:   "parse TEXT...",
	Short: "Split office text into mailing address and phone",
	Long:  "Runs the address/phone normaliser on each argument and prints the mail and phone parts, tab separated. With --name, splits \"Surname, First (Party)\" strings instead.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if parseName {
			formatNames(cmd.OutOrStdout(), args)
			return nil
		}
		failed := formatAddresses(cmd.OutOrStdout(), args)
		if failed > 0 {
			return eris.Errorf("parse: %d of %d inputs could not be split", failed, len(args))
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().BoolVar(&parseName, "name", false, "split name and party instead of address and phone")
	rootCmd.AddCommand(parseCmd)
}

// formatAddresses prints one line per input and returns the failure count.
func formatAddresses(w io.Writer, inputs []string) int {
	failed := 0
	for _, in := range inputs {
		mail, phone, err := contact.ParseAddressPhone(in)
		if err != nil {
			failed++
			fmt.Fprintf(w, "error\t%v\n", err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", mail, phone)
	}
	return failed
}

func formatNames(w io.Writer, inputs []string) {
	for _, in := range inputs {
		name, party := contact.SplitNameParty(in)
		p := "null"
		if party != nil {
			p = *party
		}
		fmt.Fprintf(w, "%s\t%s\n", name, p)
	}
}
