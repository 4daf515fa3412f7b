package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/markconv/pkg/config"
)

// outputFlags are shared by every translator command.
type outputFlags struct {
	output string
	diff   bool
	strict bool
}

func addOutputFlags(cmd *cobra.Command, flags *outputFlags, withStrict bool) {
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output atomically to this file instead of stdout")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a unified diff of input and output instead of the output")
	if withStrict {
		cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail on constructs that have no equivalent in the target dialect")
	}
}

func (f *outputFlags) apply(cfg *config.Config) {
	cfg.Output = f.output
	cfg.Diff = f.diff
	cfg.Strict = f.strict
}

// asyFlags are the Asymptote header options of ggbparse and macro2asy.
type asyFlags struct {
	font        float64
	lsf         string
	line        string
	dot         string
	size        string
	noSignature bool
}

func addAsyFlags(cmd *cobra.Command, flags *asyFlags) {
	cmd.Flags().Float64Var(&flags.font, "font", 0, "base font size in the header (default from config, else 10)")
	cmd.Flags().StringVar(&flags.lsf, "lsf", "", "label scale factor (default: read from the input, else 0.5)")
	cmd.Flags().StringVar(&flags.line, "line", "", "LINE_THICKNESS value (default 1)")
	cmd.Flags().StringVar(&flags.dot, "dot", "", "DOT_THICKNESS value (default 3.5pt)")
	cmd.Flags().StringVar(&flags.size, "size", "", "argument of size() in the header (default 12cm)")
	cmd.Flags().BoolVar(&flags.noSignature, "no-signature", false, "omit the trailing created-by comment")
}

func (f *asyFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("font") {
		if f.font <= 0 {
			return usageError("--font must be positive, got %g", f.font)
		}
		cfg.Asymptote.FontSize = f.font
	}
	cfg.Asymptote.LSF = f.lsf
	cfg.Asymptote.LineThickness = f.line
	cfg.Asymptote.DotThickness = f.dot
	cfg.Asymptote.Size = f.size
	if f.noSignature {
		signature := false
		cfg.Asymptote.Signature = &signature
	}
	return nil
}
