package configloader

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/markconv/internal/logging"
	"github.com/yaklabco/markconv/pkg/asy"
	"github.com/yaklabco/markconv/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "bbcode.commands.textsc.params").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

const bodyPlaceholder = "{body}"

// paramPlaceholder matches "{1}".."{9}" in command templates.
var paramPlaceholder = regexp.MustCompile(`\{([1-9])\}`)

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.LogLevel != "" && !logging.ValidLevel(cfg.LogLevel) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log_level",
			Value:   cfg.LogLevel,
			Message: fmt.Sprintf("invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel),
		})
	}

	validateMathTemplate(result, "bbcode.inline_math", cfg.BBCode.InlineMath)
	validateMathTemplate(result, "bbcode.display_math", cfg.BBCode.DisplayMath)
	validateCommands(cfg, result)
	validateEnvironments(cfg, result)
	validateAsymptote(cfg, result)

	return result
}

func validateMathTemplate(result *ValidationResult, field, template string) {
	if template == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Value:   template,
			Message: "template must not be empty",
		})
		return
	}
	if !strings.Contains(template, bodyPlaceholder) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   field,
			Value:   template,
			Message: "template has no {body} placeholder; math content will be dropped",
		})
	}
}

// validateCommands checks command overrides. Names are visited in sorted
// order so messages are stable.
func validateCommands(cfg *config.Config, result *ValidationResult) {
	names := make([]string, 0, len(cfg.BBCode.Commands))
	for name := range cfg.BBCode.Commands {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		cmd := cfg.BBCode.Commands[name]
		field := "bbcode.commands." + name

		if strings.TrimPrefix(name, `\`) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "bbcode.commands",
				Value:   name,
				Message: "command name must not be empty",
			})
			continue
		}

		if cmd.Params < 0 {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".params",
				Value:   cmd.Params,
				Message: "params must be >= 0",
			})
			continue
		}

		for _, template := range []string{cmd.Open, cmd.Close, cmd.OpenWithOpt} {
			for _, match := range paramPlaceholder.FindAllStringSubmatch(template, -1) {
				n, _ := strconv.Atoi(match[1])
				if n > cmd.Params {
					result.Errors = append(result.Errors, ValidationError{
						Field:   field,
						Value:   match[0],
						Message: fmt.Sprintf("template references %s but the command takes %d params", match[0], cmd.Params),
					})
				}
			}
		}

		if !cmd.Optional && (cmd.OpenWithOpt != "" || strings.Contains(cmd.Open, "{opt}")) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   name,
				Message: "optional argument template set but optional is false; it will never be used",
			})
		}
	}
}

func validateEnvironments(cfg *config.Config, result *ValidationResult) {
	for name := range cfg.BBCode.Environments {
		if strings.TrimSpace(name) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "bbcode.environments",
				Value:   name,
				Message: "environment name must not be empty",
			})
		}
	}
}

func validateAsymptote(cfg *config.Config, result *ValidationResult) {
	if cfg.Asymptote.FontSize <= 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "asymptote.font_size",
			Value:   cfg.Asymptote.FontSize,
			Message: "font_size must be > 0",
		})
		return
	}

	if err := asy.OptionsFromConfig(cfg.Asymptote).Validate(); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "asymptote",
			Message: strings.TrimPrefix(err.Error(), asy.ErrInvalidOption.Error()+": "),
		})
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
