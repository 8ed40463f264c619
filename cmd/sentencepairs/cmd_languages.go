package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/japaniel/sentencepairs/pkg/language"
)

func newLanguagesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the language codes corpora can be built for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tDIRECTION")
			for _, l := range language.Languages() {
				dir := "ltr"
				if l.RightToLeft {
					dir = "rtl"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", l.Abbrev, l.Name, dir)
			}
			return w.Flush()
		},
	}
}
