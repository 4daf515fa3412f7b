package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/markconv/pkg/config"
	"github.com/yaklabco/markconv/pkg/translate"
)

type ggbFlags struct {
	outputFlags
	asyFlags
}

func newGGBParseCommand() *cobra.Command {
	flags := &ggbFlags{}

	cmd := &cobra.Command{
		Use:   "ggbparse [FILE|-]",
		Short: "Clean up Asymptote exported by GeoGebra",
		Long: `Clean up Asymptote exported by GeoGebra.

The GeoGebra preamble, pen declarations, and marker comments are replaced
by a short header that declares LINE_THICKNESS and DOT_THICKNESS. Every
linewidth in the body is rewritten to LINE_THICKNESS and every dot to the
dp pen, so the figure's look is controlled from the header. The label scale
factor is read from the export unless --lsf is given.

Running ggbparse on its own output changes nothing.

Examples:
  markconv ggbparse figure.txt
  markconv ggbparse --font 12 --dot 4pt figure.txt -o figure.asy
  markconv ggbparse --diff figure.asy`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := &config.Config{}
			flags.outputFlags.apply(overrides)
			if err := flags.asyFlags.apply(cmd, overrides); err != nil {
				return err
			}

			return runConversion(cmd, args, conversion{
				dialect:   translate.DialectGeoGebraAsy,
				overrides: overrides,
			})
		},
	}

	addOutputFlags(cmd, &flags.outputFlags, false)
	addAsyFlags(cmd, &flags.asyFlags)

	return cmd
}
