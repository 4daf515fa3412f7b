package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/yaklabco/markconv/pkg/config"
)

// envVarPrefix is the prefix for all markconv environment variables.
const envVarPrefix = "MARKCONV_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeFloat
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"STRICT":         {field: "strict", typ: envTypeBool, description: "Fail on unsupported constructs: true or false"},
	"LOG_LEVEL":      {field: "log_level", typ: envTypeString, description: "Log level: debug, info, warn, or error"},
	"INLINE_MATH":    {field: "bbcode.inline_math", typ: envTypeString, description: "BBCode template for inline math, with {body}"},
	"DISPLAY_MATH":   {field: "bbcode.display_math", typ: envTypeString, description: "BBCode template for display math, with {body}"},
	"KEEP_COMMENTS":  {field: "bbcode.keep_comments", typ: envTypeBool, description: "Keep LaTeX % comments: true or false"},
	"FONT_SIZE":      {field: "asymptote.font_size", typ: envTypeFloat, description: "Asymptote header font size"},
	"LSF":            {field: "asymptote.lsf", typ: envTypeString, description: "Label scale factor override"},
	"LINE_THICKNESS": {field: "asymptote.line_thickness", typ: envTypeString, description: "LINE_THICKNESS header value"},
	"DOT_THICKNESS":  {field: "asymptote.dot_thickness", typ: envTypeString, description: "DOT_THICKNESS header value"},
	"SIZE":           {field: "asymptote.size", typ: envTypeString, description: "Argument of size() in the header"},
	"SIGNATURE":      {field: "asymptote.signature", typ: envTypeBool, description: "Append the created-by comment: true or false"},
	"GFM":            {field: "markdown.gfm", typ: envTypeBool, description: "Enable GitHub Flavored Markdown: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MARKCONV_ (e.g., MARKCONV_STRICT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	// Sorted so the first reported error is stable.
	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	slices.Sort(suffixes)

	for _, envSuffix := range suffixes {
		envVar := envVarPrefix + envSuffix
		value, ok := os.LookupEnv(envVar)
		if !ok || value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[envSuffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &ValidationError{
				Field:   envVar,
				Value:   value,
				Message: fmt.Sprintf("invalid boolean %q (expected true/false/1/0)", value),
			}
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return &ValidationError{
				Field:   envVar,
				Value:   value,
				Message: fmt.Sprintf("invalid number %q", value),
			}
		}
		return setFloatField(cfg, mapping.field, f)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "log_level":
		cfg.LogLevel = value
	case "bbcode.inline_math":
		cfg.BBCode.InlineMath = value
	case "bbcode.display_math":
		cfg.BBCode.DisplayMath = value
	case "asymptote.lsf":
		cfg.Asymptote.LSF = value
	case "asymptote.line_thickness":
		cfg.Asymptote.LineThickness = value
	case "asymptote.dot_thickness":
		cfg.Asymptote.DotThickness = value
	case "asymptote.size":
		cfg.Asymptote.Size = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "strict":
		cfg.Strict = value
	case "bbcode.keep_comments":
		cfg.BBCode.KeepComments = value
	case "asymptote.signature":
		cfg.Asymptote.Signature = &value
	case "markdown.gfm":
		cfg.Markdown.GFM = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setFloatField sets a numeric field on the config by field path.
func setFloatField(cfg *config.Config, field string, value float64) error {
	switch field {
	case "asymptote.font_size":
		cfg.Asymptote.FontSize = value
	default:
		return fmt.Errorf("unknown numeric field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	result := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		result[envVarPrefix+suffix] = mapping.description
	}
	return result
}
