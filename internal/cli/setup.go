package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/kianlavi/onlyfan/models"
	"github.com/spf13/cobra"
)

var errRepositoryRequired = errors.New("--repo is required for setup")

func newSetupCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Encrypt an access token with a password and commit the vault",
		Long: `Prompts for the repository access token and a password, verifies the
token can push to the repository and commits the encrypted vault.

An existing vault is replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if r.cfg.App.Repository == "" {
				return errRepositoryRequired
			}

			services, _, err := r.clientServices()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			defer services.Logout(context.WithoutCancel(ctx))

			state, err := services.Access.Probe(ctx)
			if err != nil {
				return err
			}
			if state != models.StateUninitialized {
				fmt.Fprintln(r.env.Err, warningText.Sprint("! a vault already exists and will be replaced"))
			}

			req := models.SetupRequest{Subject: r.cfg.App.Repository}
			if req.Credential, err = r.env.ReadSecret("Access token: "); err != nil {
				return err
			}
			if req.Password, err = r.env.ReadSecret("Vault password: "); err != nil {
				return err
			}
			if req.ConfirmPassword, err = r.env.ReadSecret("Confirm password: "); err != nil {
				return err
			}

			err = r.wait("Verifying access...", func() error {
				return services.Access.Setup(ctx, req)
			})
			if err != nil {
				return fmt.Errorf("setup: %w", err)
			}

			fmt.Fprintf(r.env.Out, "%s vault created at %s\n",
				successText.Sprint("✓"),
				highlightText.Sprint(req.Subject+"/"+r.cfg.App.VaultPath))
			return nil
		},
	}
}
