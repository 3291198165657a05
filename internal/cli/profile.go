package cli

import (
	"context"
	"fmt"

	"github.com/kianlavi/onlyfan/internal/service"
	"github.com/kianlavi/onlyfan/models"
	"github.com/spf13/cobra"
)

type profileOptions struct {
	name        string
	handle      string
	bio         string
	avatar      string
	banner      string
	subscribers int
	likes       int
}

// profileFieldFlags are the flags that change a profile field. Global flags
// such as --repo do not count.
var profileFieldFlags = []string{"name", "handle", "bio", "avatar", "banner", "subscribers", "likes"}

func anyChanged(cmd *cobra.Command, names []string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func newProfileCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Edit the profile record",
	}
	cmd.AddCommand(newProfileSetCommand(r))
	return cmd
}

func newProfileSetCommand(r *runner) *cobra.Command {
	var opts profileOptions

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change profile fields; fields without a flag keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !anyChanged(cmd, profileFieldFlags) {
				return errNothingToChange
			}

			return r.withSession(cmd.Context(), func(ctx context.Context, services *service.ClientServices) error {
				snapshot, err := services.Content.LoadProfile(ctx)
				if err != nil {
					return err
				}

				profile := opts.apply(cmd, snapshot.Profile)
				err = r.wait("Saving profile...", func() error {
					_, err := services.Content.SaveProfile(ctx, profile)
					return err
				})
				if err != nil {
					return err
				}

				fmt.Fprintf(r.env.Out, "%s profile saved\n", successText.Sprint("✓"))
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.name, "name", "", "display name")
	flags.StringVar(&opts.handle, "handle", "", "handle, e.g. @ava")
	flags.StringVar(&opts.bio, "bio", "", "bio")
	flags.StringVar(&opts.avatar, "avatar", "", "avatar image URL")
	flags.StringVar(&opts.banner, "banner", "", "banner image URL")
	flags.IntVar(&opts.subscribers, "subscribers", 0, "subscriber count")
	flags.IntVar(&opts.likes, "likes", 0, "total like count")
	return cmd
}

func (o profileOptions) apply(cmd *cobra.Command, p models.Profile) models.Profile {
	flags := cmd.Flags()
	if flags.Changed("name") {
		p.Name = o.name
	}
	if flags.Changed("handle") {
		p.Handle = o.handle
	}
	if flags.Changed("bio") {
		p.Bio = o.bio
	}
	if flags.Changed("avatar") {
		p.Avatar = o.avatar
	}
	if flags.Changed("banner") {
		p.Banner = o.banner
	}
	if flags.Changed("subscribers") {
		p.Subscribers = o.subscribers
	}
	if flags.Changed("likes") {
		p.TotalLikes = o.likes
	}
	return p
}
