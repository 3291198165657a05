package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kianlavi/onlyfan/internal/adapter"
	"github.com/kianlavi/onlyfan/internal/client"
	"github.com/kianlavi/onlyfan/internal/config"
	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/service"
	"github.com/kianlavi/onlyfan/internal/utils"
	"github.com/kianlavi/onlyfan/models"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// ServicesFactory builds the client services and the public document
// reader for a validated client config.
type ServicesFactory func(cfg *config.ClientConfig, log *logger.Logger) (*service.ClientServices, adapter.DocumentReader, error)

// Env is everything the commands touch outside the process.
type Env struct {
	Out io.Writer
	Err io.Writer
	Fs  afero.Fs

	// ReadSecret prompts for a value without echo.
	ReadSecret  func(prompt string) (string, error)
	NewServices ServicesFactory

	// Interactive enables spinners.
	Interactive bool
	Now         func() time.Time
	Build       models.AppBuildInfo
}

// DefaultEnv is the environment of the real process.
func DefaultEnv(build models.AppBuildInfo) Env {
	return Env{
		Out:         os.Stdout,
		Err:         os.Stderr,
		Fs:          afero.NewOsFs(),
		ReadSecret:  utils.ReadSecret,
		NewServices: client.NewServices,
		Interactive: utils.IsTerminal(),
		Now:         time.Now,
		Build:       build,
	}
}

type rootOptions struct {
	configPath string
	repo       string
	siteURL    string
	apiURL     string
	logLevel   string
}

// runner carries the loaded configuration between the root command and its
// subcommands.
type runner struct {
	env  Env
	opts rootOptions
	cfg  *config.StructuredConfig
	log  *logger.Logger
}

// Execute runs the command tree with args and returns the process exit
// code. Errors are printed to env.Err.
func Execute(ctx context.Context, env Env, args []string) int {
	cmd := NewRootCommand(env)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(env.Err, errorText.Sprint("✗ ")+describe(err))
		return 1
	}
	return 0
}

func NewRootCommand(env Env) *cobra.Command {
	r := &runner{env: env}

	root := &cobra.Command{
		Use:               "onlyfan",
		Short:             "Administer an onlyfan site from the command line",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: r.load,
	}
	root.SetOut(env.Out)
	root.SetErr(env.Err)

	flags := root.PersistentFlags()
	flags.StringVarP(&r.opts.configPath, "config", "c", "", "JSON config file path")
	flags.StringVar(&r.opts.repo, "repo", "", "repository holding the vault and content (owner/name)")
	flags.StringVar(&r.opts.siteURL, "site", "", "published site URL")
	flags.StringVar(&r.opts.apiURL, "api", "", "contents API base URL")
	flags.StringVar(&r.opts.logLevel, "log-level", "", "log level (default warn)")

	root.AddCommand(
		newStatusCommand(r),
		newSetupCommand(r),
		newPostCommand(r),
		newProfileCommand(r),
		newFeedCommand(r),
		newTokenCommand(r),
		newVersionCommand(r),
	)
	return root
}

func (r *runner) load(cmd *cobra.Command, _ []string) error {
	overrides := &config.StructuredConfig{
		JSONFilePath: r.opts.configPath,
		App: config.App{
			Repository: r.opts.repo,
			SiteURL:    r.opts.siteURL,
		},
		Adapter: config.Adapter{HTTPAddress: r.opts.apiURL},
		Log:     config.Log{Level: r.opts.logLevel},
	}

	cfg, err := config.GetCLIConfig(overrides)
	if err != nil {
		return err
	}

	// the tool talks to the terminal; service logs stay quiet unless asked
	level := "warn"
	if r.opts.logLevel != "" {
		level = r.opts.logLevel
	}
	if err = logger.SetLevel(level); err != nil {
		return err
	}

	r.cfg = cfg
	r.log = logger.NewConsoleLogger(r.env.Err, "onlyfan-cli")
	return nil
}

func (r *runner) clientServices() (*service.ClientServices, adapter.DocumentReader, error) {
	clientCfg, err := r.cfg.ClientView()
	if err != nil {
		return nil, nil, err
	}
	return r.env.NewServices(clientCfg, r.log)
}

// withSession unlocks the vault with a prompted password, runs fn and logs
// out whatever fn returns.
func (r *runner) withSession(ctx context.Context, fn func(ctx context.Context, services *service.ClientServices) error) error {
	services, _, err := r.clientServices()
	if err != nil {
		return err
	}
	defer services.Logout(context.WithoutCancel(ctx))

	password, err := r.env.ReadSecret("Vault password: ")
	if err != nil {
		return err
	}

	err = r.wait("Unlocking vault...", func() error {
		return services.Access.Unlock(ctx, models.UnlockRequest{Password: password})
	})
	if err != nil {
		return fmt.Errorf("unlock: %w", err)
	}

	return fn(ctx, services)
}
