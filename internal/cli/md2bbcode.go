package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/markconv/pkg/config"
	"github.com/yaklabco/markconv/pkg/markdown"
	"github.com/yaklabco/markconv/pkg/translate"
)

type markdownFlags struct {
	outputFlags
	flavor string
}

func newMD2BBCodeCommand() *cobra.Command {
	flags := &markdownFlags{}

	cmd := &cobra.Command{
		Use:   "md2bbcode [FILE|-]",
		Short: "Translate Markdown to BBCode",
		Long: `Translate Markdown to BBCode.

Emphasis, headings, links, images, code, lists, and block quotes become
BBCode tags. With the gfm flavor (the default) strikethrough, task lists,
tables, and bare URLs are also recognized. Markdown has no malformed
state, so this command only fails on I/O errors.

Examples:
  markconv md2bbcode README.md
  markconv md2bbcode --flavor commonmark notes.md -o notes.bbcode`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			flavorSet := cmd.Flags().Changed("flavor")
			if flavorSet && flags.flavor != markdown.FlavorGFM && flags.flavor != markdown.FlavorCommonMark {
				return usageError("invalid --flavor %q: must be commonmark or gfm", flags.flavor)
			}

			overrides := &config.Config{}
			flags.apply(overrides)

			return runConversion(cmd, args, conversion{
				dialect:   translate.DialectMarkdownBBCode,
				overrides: overrides,
				adjust: func(cfg *config.Config) {
					if flavorSet {
						cfg.Markdown.GFM = flags.flavor == markdown.FlavorGFM
					}
				},
			})
		},
	}

	addOutputFlags(cmd, &flags.outputFlags, false)
	cmd.Flags().StringVar(&flags.flavor, "flavor", markdown.FlavorGFM, "Markdown flavor: commonmark, gfm")

	return cmd
}
