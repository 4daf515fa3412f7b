package configloader

import (
	"maps"

	"github.com/yaklabco/markconv/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// It is used for the CLI flag layer, where only flags the user set carry
// non-zero values:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Booleans: only true overrides; a flag cannot unset a file setting
//
// Config files are layered by decoding onto the current configuration
// instead (see applyConfigFile), so explicit false values in files survive.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Strict {
		result.Strict = true
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}

	mergeBBCode(&result.BBCode, override.BBCode)
	mergeAsymptote(&result.Asymptote, override.Asymptote)

	if override.Markdown.GFM {
		result.Markdown.GFM = true
	}

	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Diff {
		result.Diff = true
	}
	if override.From != "" {
		result.From = override.From
	}

	return result
}

func mergeBBCode(result *config.BBCodeConfig, override config.BBCodeConfig) {
	if override.InlineMath != "" {
		result.InlineMath = override.InlineMath
	}
	if override.DisplayMath != "" {
		result.DisplayMath = override.DisplayMath
	}
	if override.KeepComments {
		result.KeepComments = true
	}

	if override.Commands != nil {
		if result.Commands == nil {
			result.Commands = make(map[string]config.CommandConfig, len(override.Commands))
		}
		maps.Copy(result.Commands, override.Commands)
	}
	if override.Environments != nil {
		if result.Environments == nil {
			result.Environments = make(map[string]config.EnvironmentConfig, len(override.Environments))
		}
		maps.Copy(result.Environments, override.Environments)
	}
}

func mergeAsymptote(result *config.AsymptoteConfig, override config.AsymptoteConfig) {
	if override.FontSize != 0 {
		result.FontSize = override.FontSize
	}
	if override.LSF != "" {
		result.LSF = override.LSF
	}
	if override.LineThickness != "" {
		result.LineThickness = override.LineThickness
	}
	if override.DotThickness != "" {
		result.DotThickness = override.DotThickness
	}
	if override.Size != "" {
		result.Size = override.Size
	}
	if override.Signature != nil {
		sig := *override.Signature
		result.Signature = &sig
	}
}
