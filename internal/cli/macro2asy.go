package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/markconv/pkg/config"
	"github.com/yaklabco/markconv/pkg/translate"
)

type macroFlags struct {
	outputFlags
	asyFlags
}

func newMacro2AsyCommand() *cobra.Command {
	flags := &macroFlags{}

	cmd := &cobra.Command{
		Use:   "macro2asy [FILE|-]",
		Short: "Expand geometry macros into Asymptote",
		Long: `Expand geometry macros into Asymptote.

Each line is a macro statement (point, seg, ray, poly, circle, circ, fill,
dot, label, unitsize), a comment, a block (begin pen|clip|group ... end),
or plain Asymptote that is copied through. The result is cleaned like
ggbparse output, so it carries the same header and pens.

Examples:
  markconv macro2asy triangle.mac
  markconv macro2asy --strict --lsf 0.6 triangle.mac -o triangle.asy`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := &config.Config{}
			flags.outputFlags.apply(overrides)
			if err := flags.asyFlags.apply(cmd, overrides); err != nil {
				return err
			}

			return runConversion(cmd, args, conversion{
				dialect:   translate.DialectMacroAsy,
				overrides: overrides,
			})
		},
	}

	addOutputFlags(cmd, &flags.outputFlags, true)
	addAsyFlags(cmd, &flags.asyFlags)

	return cmd
}
