package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/markconv/internal/configloader"
	"github.com/yaklabco/markconv/internal/ui/pretty"
	"github.com/yaklabco/markconv/pkg/detect"
	"github.com/yaklabco/markconv/pkg/fsutil"
	"github.com/yaklabco/markconv/pkg/translate"
)

// Exit codes for markconv. Values above 63 follow sysexits.h.
const (
	// ExitSuccess indicates the translation was written.
	ExitSuccess = 0

	// ExitMalformedInput indicates an unbalanced or unterminated construct.
	ExitMalformedInput = 1

	// ExitUnsupported indicates an unsupported construct in strict mode.
	ExitUnsupported = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitNoInput indicates the input file does not exist or is not a file.
	ExitNoInput = 66

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors that select an exit code.
var (
	// ErrInvalidUsage marks bad arguments or flags.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig marks configuration loading failures.
	ErrConfig = errors.New("configuration error")

	// ErrIO marks read and write failures other than a missing input.
	ErrIO = errors.New("i/o error")
)

// reportedError marks an error whose diagnostic was already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidUsage, fmt.Sprintf(format, args...))
}

// usageArgs wraps a positional argument validator so its failures map to ExitInvalidUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		return nil
	}
}

func flagError(_ *cobra.Command, err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, translate.ErrMalformedInput):
		return ExitMalformedInput
	case errors.Is(err, translate.ErrUnsupportedConstruct):
		return ExitUnsupported
	case errors.Is(err, ErrInvalidUsage),
		errors.Is(err, translate.ErrUnknownDialect),
		errors.Is(err, detect.ErrUndetected):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), configloader.IsValidationError(err):
		return ExitConfigError
	case errors.Is(err, translate.ErrFileNotFound),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitNoInput
	case errors.Is(err, ErrIO), errors.Is(err, fsutil.ErrPermissionDenied):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// Execute runs cmd and returns the process exit code. An error is printed
// to the command's stderr exactly once.
func Execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	// Cobra reports unknown subcommands as plain errors.
	if strings.HasPrefix(err.Error(), "unknown command") {
		err = fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	var reported *reportedError
	if !errors.As(err, &reported) {
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.ErrOrStderr()))
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), styles.FormatError(err, nil))
	}

	return ExitCode(err)
}
