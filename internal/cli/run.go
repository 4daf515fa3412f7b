package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/markconv/internal/configloader"
	"github.com/yaklabco/markconv/internal/logging"
	"github.com/yaklabco/markconv/internal/ui/pretty"
	"github.com/yaklabco/markconv/pkg/config"
	"github.com/yaklabco/markconv/pkg/detect"
	"github.com/yaklabco/markconv/pkg/diff"
	"github.com/yaklabco/markconv/pkg/fsutil"
	"github.com/yaklabco/markconv/pkg/source"
	"github.com/yaklabco/markconv/pkg/translate"
)

// stdinName is the document path used for standard input.
const stdinName = "<stdin>"

// conversion describes one translator invocation.
type conversion struct {
	// dialect selects the translator. Empty means detect it from the input.
	dialect translate.Dialect

	// overrides is the CLI flag layer of the configuration.
	overrides *config.Config

	// adjust applies flags that must be able to turn options off after
	// all configuration layers are merged.
	adjust func(cfg *config.Config)
}

// input is the document read for a conversion.
type input struct {
	path    string
	content []byte
	stdin   bool
}

func runConversion(cmd *cobra.Command, args []string, conv conversion) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, cmd, conv.overrides)
	if err != nil {
		return err
	}
	if conv.adjust != nil {
		conv.adjust(cfg)
	}

	logger := newCommandLogger(cmd, cfg)
	ctx = logging.WithLogger(ctx, logger)

	in, err := readInput(ctx, cmd, args)
	if err != nil {
		return err
	}

	dialect, err := resolveDialect(conv.dialect, cfg.From, in)
	if err != nil {
		return err
	}

	translator, err := translate.DefaultRegistry.New(dialect, cfg)
	if err != nil {
		if errors.Is(err, translate.ErrUnknownDialect) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	ctx = logging.WithFields(ctx, logging.FieldDialect, dialect, logging.FieldInput, in.path)
	logging.FromContext(ctx).Debug("translating",
		logging.FieldBytes, len(in.content),
		logging.FieldStrict, cfg.Strict,
	)

	doc := source.NewDocument(in.path, in.content)
	output, err := translator.Translate(ctx, doc)
	if err != nil {
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.ErrOrStderr()))
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), styles.FormatError(err, doc))
		return &reportedError{err: err}
	}

	switch {
	case cfg.Diff:
		return writeDiff(cmd, in, cfg.Output, output)
	case cfg.Output != "":
		return writeOutputFile(ctx, cmd, cfg.Output, output)
	default:
		if _, err := cmd.OutOrStdout().Write(output); err != nil {
			return fmt.Errorf("%w: write output: %w", ErrIO, err)
		}
		return nil
	}
}

// loadConfig resolves the layered configuration for a command.
func loadConfig(ctx context.Context, cmd *cobra.Command, overrides *config.Config) (*config.Config, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: flagValue(cmd, flagConfig),
		CLIConfig:    overrides,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if len(result.Warnings) > 0 {
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.ErrOrStderr()))
		for _, warning := range result.Warnings {
			_, _ = io.WriteString(cmd.ErrOrStderr(), styles.FormatWarning(warning))
		}
	}
	if len(result.LoadedFrom) > 0 {
		logging.Default().Debug("loaded configuration",
			logging.FieldConfigPath, result.LoadedFrom,
			logging.FieldWorkingDir, workDir,
		)
	}

	return result.Config, nil
}

// newCommandLogger creates the logger translators use for warnings.
// It writes to the command's stderr so output on stdout stays clean.
func newCommandLogger(cmd *cobra.Command, cfg *config.Config) *log.Logger {
	level := cfg.LogLevel
	if debugEnabled(cmd) {
		level = "debug"
	}
	return logging.NewWriter(cmd.ErrOrStderr(), level)
}

// readInput reads the file named by args, or standard input for "-" or
// when no argument is given and stdin is not a terminal.
func readInput(ctx context.Context, cmd *cobra.Command, args []string) (*input, error) {
	if len(args) == 0 || args[0] == "-" {
		stdin := cmd.InOrStdin()
		if len(args) == 0 && isTerminal(stdin) {
			return nil, usageError("no input file given and stdin is a terminal")
		}

		content, err := fsutil.ReadAll(ctx, stdin, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIO, err)
		}
		return &input{path: stdinName, content: content, stdin: true}, nil
	}

	path := args[0]
	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, fsutil.ErrIsDirectory) {
			return nil, fmt.Errorf("%w: %w", translate.ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return &input{path: path, content: content}, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// resolveDialect picks the translator: the command's own dialect, then
// --from, then detection from the input.
func resolveDialect(fixed translate.Dialect, from string, in *input) (translate.Dialect, error) {
	if fixed != "" {
		return fixed, nil
	}

	if from != "" {
		reg, ok := translate.DefaultRegistry.Resolve(from)
		if !ok {
			return "", fmt.Errorf("%w: %q (run 'markconv dialects' to list them)", translate.ErrUnknownDialect, from)
		}
		return reg.Dialect, nil
	}

	path := in.path
	if in.stdin {
		path = ""
	}
	return detect.Detect(path, in.content)
}

func writeDiff(cmd *cobra.Command, in *input, outputPath string, output []byte) error {
	newName := outputPath
	if newName == "" {
		newName = in.path + " (converted)"
	}

	unified := diff.Compute(in.path, newName, in.content, output)

	stdout := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout()))
	if _, err := io.WriteString(cmd.OutOrStdout(), stdout.FormatDiff(unified)); err != nil {
		return fmt.Errorf("%w: write diff: %w", ErrIO, err)
	}

	stderr := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.ErrOrStderr()))
	_, _ = io.WriteString(cmd.ErrOrStderr(), stderr.FormatDiffSummary(unified))
	return nil
}

func writeOutputFile(ctx context.Context, cmd *cobra.Command, path string, output []byte) error {
	changed, err := fsutil.WriteAtomicIfChanged(ctx, path, output, 0)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	logging.FromContext(ctx).Debug("wrote output", logging.FieldOutput, path, logging.FieldBytes, len(output))

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.ErrOrStderr()))
	_, _ = io.WriteString(cmd.ErrOrStderr(), styles.FormatWriteSummary(path, len(output), changed))
	return nil
}
