package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/kianlavi/onlyfan/internal/config"
	"github.com/kianlavi/onlyfan/internal/service"
	"github.com/kianlavi/onlyfan/models"
	"github.com/spf13/cobra"
)

var (
	errSignKeyRequired = errors.New("APP_TOKEN_SIGN_KEY is required to mint tokens")
	errTokenRepository = errors.New("--repo is required to mint a token")
	errUnknownScope    = errors.New("scope must be pull or push")
)

func newTokenCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage bearer tokens of the self-hosted store",
	}
	cmd.AddCommand(newTokenMintCommand(r))
	return cmd
}

func newTokenMintCommand(r *runner) *cobra.Command {
	var (
		scope string
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint a token for one repository",
		Long: `Signs a token with the store's key. The token is printed alone on
stdout so it can be piped into setup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if r.cfg.App.TokenSignKey == "" {
				return errSignKeyRequired
			}
			if r.cfg.App.Repository == "" {
				return errTokenRepository
			}
			if scope != models.ScopePull && scope != models.ScopePush {
				return fmt.Errorf("%w: %q", errUnknownScope, scope)
			}

			duration := r.cfg.App.TokenDuration
			if ttl > 0 {
				duration = ttl
			}

			tokens := service.NewTokenService(config.ServerApp{
				TokenSignKey:  r.cfg.App.TokenSignKey,
				TokenIssuer:   r.cfg.App.TokenIssuer,
				TokenDuration: duration,
			}, r.log)

			token, err := tokens.CreateToken(cmd.Context(), r.cfg.App.Repository, scope)
			if err != nil {
				return err
			}

			fmt.Fprintln(r.env.Out, token.SignedString)
			fmt.Fprintln(r.env.Err, mutedText.Sprintf("%s token for %s, expires %s",
				scope, r.cfg.App.Repository, token.Claims.ExpiresAt.Time.Format(time.RFC3339)))
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", models.ScopePush, "token scope: pull or push")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default APP_TOKEN_DURATION)")
	return cmd
}
