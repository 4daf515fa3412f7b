// Package cli provides the Cobra command structure for markconv.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/markconv/internal/logging"
	"github.com/yaklabco/markconv/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Global flag names.
const (
	flagConfig = "config"
	flagDebug  = "debug"
	flagColor  = "color"
)

// NewRootCommand creates the root markconv command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "markconv",
		Short: "Convert LaTeX, Markdown, and GeoGebra figures for forum posts",
		Long: `markconv translates lightweight markup between dialects.

It turns LaTeX and Markdown into BBCode for forum posts, cleans up
Asymptote exported by GeoGebra so that line and dot thickness are set in
one place, and expands a small macro language into the same Asymptote.

Every translator reads one file (or standard input) and writes the
complete result to standard output, or atomically to --output. Nothing is
written when the input is malformed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addGlobalFlags(rootCmd)

	rootCmd.AddGroup(
		&cobra.Group{ID: groupTranslators, Title: "Translators:"},
		&cobra.Group{ID: groupUtilities, Title: "Utilities:"},
	)
	rootCmd.SetHelpCommandGroupID(groupUtilities)
	rootCmd.SetCompletionCommandGroupID(groupUtilities)

	addGroupedCommands(rootCmd, groupTranslators,
		newLatex2BBCodeCommand(),
		newMD2BBCodeCommand(),
		newGGBParseCommand(),
		newMacro2AsyCommand(),
		newConvertCommand(),
	)
	addGroupedCommands(rootCmd, groupUtilities,
		newDialectsCommand(),
		newInitCommand(),
		newVersionCommand(info),
	)

	helpFormatter := NewHelpFormatter(colorMode(rootCmd), os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// standaloneCommands builds the translator commands that also ship as
// their own binaries.
//
//nolint:gochecknoglobals // Read-only lookup table.
var standaloneCommands = map[string]func() *cobra.Command{
	"latex2bbcode": newLatex2BBCodeCommand,
	"md2bbcode":    newMD2BBCodeCommand,
	"ggbparse":     newGGBParseCommand,
	"macro2asy":    newMacro2AsyCommand,
}

// NewStandaloneCommand returns the translator command called name mounted
// as a root command, for the single-purpose binaries.
func NewStandaloneCommand(info BuildInfo, name string) (*cobra.Command, error) {
	build, ok := standaloneCommands[name]
	if !ok {
		return nil, fmt.Errorf("no standalone command %q", name)
	}

	cmd := build()
	cmd.Version = fmt.Sprintf("%s (commit %s, built %s)", info.Version, info.Commit, info.Date)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	addGlobalFlags(cmd)

	helpFormatter := NewHelpFormatter(colorMode(cmd), os.Stdout)
	helpFormatter.ApplyToCommand(cmd)

	return cmd, nil
}

func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(flagDebug, false, "enable debug logging")
	cmd.PersistentFlags().String(flagConfig, "", "path to config file")
	cmd.PersistentFlags().String(flagColor, "auto", "colorize output: auto, always, never")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if mode := colorMode(cmd); !pretty.ValidColorMode(mode) {
			return usageError("invalid --color %q: must be auto, always, or never", mode)
		}
		if debugEnabled(cmd) {
			logging.SetLevel("debug")
		}
		return nil
	}
	cmd.SetFlagErrorFunc(flagError)
}

// flagValue reads a flag from cmd's merged flags, falling back to its own
// persistent flags before the command has been executed.
func flagValue(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

func colorMode(cmd *cobra.Command) string {
	if mode := flagValue(cmd, flagColor); mode != "" {
		return mode
	}
	return "auto"
}

func debugEnabled(cmd *cobra.Command) bool {
	return flagValue(cmd, flagDebug) == "true"
}
