package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/markconv/pkg/config"
	"github.com/yaklabco/markconv/pkg/translate"
)

type latexFlags struct {
	outputFlags
	inlineMath   string
	displayMath  string
	keepComments bool
}

func newLatex2BBCodeCommand() *cobra.Command {
	flags := &latexFlags{}

	cmd := &cobra.Command{
		Use:   "latex2bbcode [FILE|-]",
		Short: "Translate LaTeX markup to BBCode",
		Long: `Translate LaTeX markup to BBCode.

Formatting commands, sectioning, lists, quotes, and links become BBCode
tags. Math is wrapped in [tex] tags with its body copied verbatim. Unknown
commands pass through unchanged; commands with no BBCode equivalent pass
through with a warning, or fail with --strict.

Unbalanced braces, unterminated math, and mismatched environments are
reported with their line and column, and nothing is written.

Examples:
  markconv latex2bbcode post.tex
  markconv latex2bbcode post.tex -o post.bbcode
  cat post.tex | markconv latex2bbcode
  markconv latex2bbcode --inline-math '[m]{body}[/m]' post.tex`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := &config.Config{}
			flags.apply(overrides)
			overrides.BBCode.InlineMath = flags.inlineMath
			overrides.BBCode.DisplayMath = flags.displayMath
			overrides.BBCode.KeepComments = flags.keepComments

			return runConversion(cmd, args, conversion{
				dialect:   translate.DialectLaTeXBBCode,
				overrides: overrides,
			})
		},
	}

	addOutputFlags(cmd, &flags.outputFlags, true)
	cmd.Flags().StringVar(&flags.inlineMath, "inline-math", "", "template for inline math, with {body}")
	cmd.Flags().StringVar(&flags.displayMath, "display-math", "", "template for display math, with {body}")
	cmd.Flags().BoolVar(&flags.keepComments, "keep-comments", false, "keep % comments instead of dropping them")

	return cmd
}
