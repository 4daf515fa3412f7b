package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/markconv/pkg/config"
)

type convertFlags struct {
	outputFlags
	from string
}

func newConvertCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [FILE|-]",
		Short: "Convert a file, detecting its dialect",
		Long: `Convert a file with the translator for its dialect.

The dialect is detected from the file extension and content: .tex is
LaTeX, .md is Markdown, .asy is GeoGebra Asymptote, .mac and .asym are
macros. Use --from with a dialect or command name when detection fails or
for standard input.

Examples:
  markconv convert post.tex
  markconv convert --from macro-asy figure.txt
  cat notes.md | markconv convert --from md2bbcode`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := &config.Config{From: flags.from}
			flags.apply(overrides)

			return runConversion(cmd, args, conversion{overrides: overrides})
		},
	}

	addOutputFlags(cmd, &flags.outputFlags, true)
	cmd.Flags().StringVar(&flags.from, "from", "", "dialect or command name to use instead of detection")

	return cmd
}
