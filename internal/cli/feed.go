package cli

import (
	"github.com/kianlavi/onlyfan/internal/feed"
	"github.com/spf13/cobra"
)

func newFeedCommand(r *runner) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Render the public timeline",
		Long: `Renders the profile and posts the way visitors see them. Reads the
published site when --site is set, otherwise the repository anonymously.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, reader, err := r.clientServices()
			if err != nil {
				return err
			}

			var f feed.Feed
			err = r.wait("Loading feed...", func() error {
				f, err = feed.Load(cmd.Context(), reader, r.feedPaths())
				return err
			})
			if err != nil {
				return err
			}

			return feed.NewRenderer(width).Render(r.env.Out, f, r.env.Now())
		},
	}

	cmd.Flags().IntVar(&width, "width", 60, "render width in columns")
	return cmd
}

func (r *runner) feedPaths() feed.Paths {
	return feed.Paths{Posts: r.cfg.App.PostsPath, Profile: r.cfg.App.ProfilePath}
}

