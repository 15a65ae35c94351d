package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/luxescript/core/style"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the formatting styles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tBEST FOR")
		for _, d := range style.Default().All() {
			marker := ""
			if style.Canonical(cfg.Style) == d.ID {
				marker = " *"
			}
			fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n", d.ID, marker, d.Metadata.Name, d.Metadata.Category, strings.Join(d.Metadata.BestFor, ", "))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(stylesCmd)
}
