package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newModelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the versions of this setting and their migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			models := a.ext.Models()
			if len(models) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No versions registered.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "VERSION\tBACKWARD\tFORWARD")
			for _, m := range models {
				back, ok := m.MigratesBackwardTo()
				if !ok {
					back = "-"
				}
				fwd, ok := m.MigratesForwardTo()
				if !ok {
					fwd = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", m.Version(), back, fwd)
			}
			return w.Flush()
		},
	}
}
