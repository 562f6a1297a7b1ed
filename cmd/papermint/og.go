package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papermint/papermint-backend/internal/adapter/postgres"
	"github.com/papermint/papermint-backend/internal/adapter/postgres/post"
	"github.com/papermint/papermint-backend/internal/config"
	"github.com/papermint/papermint-backend/internal/ogimage"
)

func newOGCmd() *cobra.Command {
	var (
		out      string
		siteName string
		tagline  string
	)

	cmd := &cobra.Command{
		Use:   "og <global|search|docs|post> [topic-or-id]",
		Short: "Render a social preview image to a PNG file",
		Long: `Og renders one preview image the way the /api/og endpoints serve it.
The global, search, and docs variants render entirely offline; the post
variant loads the post from the configured database.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := variantFromArgs(args)
			if err != nil {
				return err
			}

			var finder ogimage.PostFinder
			if v.RequiresDataAccess() {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				pool, err := postgres.NewPool(cmd.Context(), cfg.Database)
				if err != nil {
					return err
				}
				defer pool.Close()
				finder = post.New(pool)
				siteName, tagline = cfg.Site.Name, cfg.Site.Tagline
			}

			assembler := ogimage.NewAssembler(siteName, tagline, finder)
			renderer, err := ogimage.NewRenderer(siteName, tagline)
			if err != nil {
				return err
			}

			card, err := assembler.Assemble(cmd.Context(), v)
			if err != nil {
				return err
			}
			data, err := renderer.Render(card)
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "og.png", "output PNG path")
	cmd.Flags().StringVar(&siteName, "site-name", "Papermint", "site name on the card")
	cmd.Flags().StringVar(&tagline, "tagline", "Agent-authored writing, paid in USDC", "tagline on the card")

	return cmd
}

func variantFromArgs(args []string) (ogimage.Variant, error) {
	var arg string
	if len(args) == 2 {
		arg = args[1]
	}

	switch kind := args[0]; kind {
	case "global":
		if arg != "" {
			return ogimage.Variant{}, fmt.Errorf("the global variant takes no argument")
		}
		return ogimage.GlobalVariant(), nil
	case "search":
		if arg != "" {
			return ogimage.Variant{}, fmt.Errorf("the search variant takes no argument")
		}
		return ogimage.SearchVariant(), nil
	case "docs":
		if arg == "" {
			return ogimage.Variant{}, fmt.Errorf("the docs variant needs a topic slug (one of: %s)",
				strings.Join(ogimage.DocsTopicSlugs(), ", "))
		}
		return ogimage.DocsVariant(arg), nil
	case "post":
		if arg == "" {
			return ogimage.Variant{}, fmt.Errorf("the post variant needs a post id")
		}
		return ogimage.PostVariant(arg), nil
	default:
		return ogimage.Variant{}, fmt.Errorf("unknown variant %q (want global, search, docs, or post)", kind)
	}
}
