package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/markconv/internal/ui/pretty"
	"github.com/yaklabco/markconv/pkg/translate"
)

type dialectsFlags struct {
	format string
}

const (
	formatText = "text"
	formatJSON = "json"
)

// dialectInfo represents a dialect pair in JSON output.
type dialectInfo struct {
	Dialect     string `json:"dialect"`
	Command     string `json:"command"`
	Description string `json:"description"`
}

func newDialectsCommand() *cobra.Command {
	flags := &dialectsFlags{}

	cmd := &cobra.Command{
		Use:   "dialects",
		Short: "List available dialect pairs",
		Long: `List the registered translators with their dialect pair, the
command that runs them, and a short description. Dialect and command names
are both accepted by "markconv convert --from".`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			regs := translate.DefaultRegistry.Registrations()

			switch flags.format {
			case formatJSON:
				return outputDialectsJSON(cmd, regs)
			case formatText:
				styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout()))
				table := pretty.NewTableFormatter(styles, 0)
				if _, err := fmt.Fprint(cmd.OutOrStdout(), table.FormatDialects(regs)); err != nil {
					return fmt.Errorf("%w: write dialects: %w", ErrIO, err)
				}
				return nil
			default:
				return usageError("invalid --format %q: must be text or json", flags.format)
			}
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", formatText, "output format: text, json")

	return cmd
}

// outputDialectsJSON outputs registrations as a JSON array.
func outputDialectsJSON(cmd *cobra.Command, regs []translate.Registration) error {
	infos := make([]dialectInfo, 0, len(regs))
	for _, reg := range regs {
		infos = append(infos, dialectInfo{
			Dialect:     string(reg.Dialect),
			Command:     reg.Command,
			Description: reg.Description,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding dialects: %w", err)
	}
	return nil
}
