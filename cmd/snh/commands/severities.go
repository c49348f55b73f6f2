package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/simbashlog/notify-helper/pkg/severity"
	"github.com/spf13/cobra"
)

var severitiesCmd = &cobra.Command{
	Use:   "severities",
	Short: "List the severity catalog",
	// Short: 列出严重级别目录
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CODE\tLABEL\tSEVERITY\tDESCRIPTION")
		for _, d := range severity.All() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", severity.NumberGlyph(d.Code), d.Label, d.Severity, d.Description)
		}
		tw.Flush()
	},
}
