package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/kianlavi/onlyfan/internal/feed"
	"github.com/kianlavi/onlyfan/internal/service"
	"github.com/kianlavi/onlyfan/models"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newPostCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Publish, list and delete posts",
	}
	cmd.AddCommand(newPostAddCommand(r), newPostListCommand(r), newPostDeleteCommand(r))
	return cmd
}

type postAddOptions struct {
	text      string
	imageFile string
	likes     int
	comments  int
	tips      float64
	locked    bool
	price     float64
	date      string
}

func newPostAddCommand(r *runner) *cobra.Command {
	var opts postAddOptions

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Publish a new post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft, err := opts.draft(cmd)
			if err != nil {
				return err
			}

			return r.withSession(cmd.Context(), func(ctx context.Context, services *service.ClientServices) error {
				if opts.imageFile != "" {
					data, err := afero.ReadFile(r.env.Fs, opts.imageFile)
					if err != nil {
						return fmt.Errorf("read image: %w", err)
					}

					err = r.wait("Uploading image...", func() error {
						draft.Image, err = services.Content.UploadImage(ctx, filepath.Base(opts.imageFile), data)
						return err
					})
					if err != nil {
						return err
					}
				}

				var post models.Post
				err := r.wait("Publishing...", func() error {
					var err error
					post, err = services.Content.PublishPost(ctx, draft)
					return err
				})
				if err != nil {
					return err
				}

				fmt.Fprintf(r.env.Out, "%s published %s\n", successText.Sprint("✓"), highlightText.Sprint(post.ID))
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.text, "text", "", "post text")
	flags.StringVar(&opts.imageFile, "image-file", "", "local image to upload with the post")
	flags.IntVar(&opts.likes, "likes", 0, "like count (random when omitted)")
	flags.IntVar(&opts.comments, "comments", 0, "comment count")
	flags.Float64Var(&opts.tips, "tips", 0, "tips received")
	flags.BoolVar(&opts.locked, "locked", false, "show the post to subscribers only")
	flags.Float64Var(&opts.price, "price", 0, "unlock price of a locked post")
	flags.StringVar(&opts.date, "date", "", "post date in RFC 3339 (now when omitted)")
	return cmd
}

// draft builds the draft from the flags that were set; unset optional
// flags stay nil so the service applies its defaults.
func (o postAddOptions) draft(cmd *cobra.Command) (models.PostDraft, error) {
	flags := cmd.Flags()
	draft := models.PostDraft{
		Text:     o.text,
		Comments: o.comments,
		Locked:   o.locked,
	}

	if flags.Changed("likes") {
		likes := o.likes
		draft.Likes = &likes
	}
	if flags.Changed("tips") {
		tips := o.tips
		draft.Tips = &tips
	}
	if flags.Changed("price") {
		price := o.price
		draft.Price = &price
	}
	if o.date != "" {
		date, err := time.Parse(time.RFC3339, o.date)
		if err != nil {
			return models.PostDraft{}, fmt.Errorf("--date: %w", err)
		}
		draft.Date = &date
	}
	if o.imageFile != "" {
		draft.Image = filepath.Base(o.imageFile)
	}
	return draft, nil
}

func newPostListCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List published posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withSession(cmd.Context(), func(ctx context.Context, services *service.ClientServices) error {
				snapshot, err := services.Content.LoadPosts(ctx)
				if err != nil {
					return err
				}

				if len(snapshot.Posts) == 0 {
					fmt.Fprintln(r.env.Out, mutedText.Sprint("No posts yet"))
					return nil
				}

				now := r.env.Now()
				tw := tabwriter.NewWriter(r.env.Out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tPOSTED\tLIKES\tLOCKED\tTEXT")
				for _, p := range feed.Sort(snapshot.Posts) {
					locked := ""
					if p.Locked {
						locked = "yes"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
						p.ID, feed.TimeAgo(now, p.Date), feed.FormatNumber(p.Likes), locked, summary(p.Text, 40))
				}
				return tw.Flush()
			})
		},
	}
}

func newPostDeleteCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return r.withSession(cmd.Context(), func(ctx context.Context, services *service.ClientServices) error {
				if err := services.Content.DeletePost(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(r.env.Out, "%s deleted %s\n", successText.Sprint("✓"), highlightText.Sprint(id))
				return nil
			})
		},
	}
}

// summary returns the first line of text cut to n runes.
func summary(text string, n int) string {
	for i, c := range text {
		if c == '\n' {
			text = text[:i]
			break
		}
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n-1]) + "…"
}
