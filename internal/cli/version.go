package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// needs no configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(*cobra.Command, []string) error {
			fmt.Fprintln(r.env.Out, r.env.Build.String())
			return nil
		},
	}
}
