package cli

import (
	"fmt"

	"github.com/kianlavi/onlyfan/models"
	"github.com/spf13/cobra"
)

func newStatusCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the repository has an admin vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			services, _, err := r.clientServices()
			if err != nil {
				return err
			}

			var state models.AccessState
			err = r.wait("Looking for the admin config...", func() error {
				state, err = services.Access.Probe(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}

			switch state {
			case models.StateUninitialized:
				fmt.Fprintln(r.env.Out, warningText.Sprint("setup required"))
			default:
				fmt.Fprintln(r.env.Out, successText.Sprint("vault present"))
			}
			return nil
		},
	}
}
