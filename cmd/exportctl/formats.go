package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/uofr/moodle-block-export-quiz/internal/format"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the registered export formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEXTENSION\tMIME TYPE")
			for _, info := range format.DefaultRegistry().Describe() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, info.Extension, info.MimeType)
			}
			return w.Flush()
		},
	}
}

