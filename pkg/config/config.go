// Package config defines core configuration types for markconv.
// These types are pure data structures with no dependency on the loader.
package config

// Default values applied by NewConfig.
const (
	DefaultInlineMath    = "[tex]{body}[/tex]"
	DefaultDisplayMath   = "[tex]\\displaystyle {body}[/tex]"
	DefaultFontSize      = 10.0
	DefaultLSF           = "0.5"
	DefaultLineThickness = "1"
	DefaultDotThickness  = "3.5pt"
	DefaultSize          = "12cm"
)

// CommandConfig overrides the BBCode rendering of a single LaTeX command.
//
// Open and Close are templates. "{1}", "{2}", ... are replaced by the raw
// parameters and "{opt}" by the optional bracket argument.
type CommandConfig struct {
	// Params is the number of brace parameters copied verbatim into the templates.
	Params int `yaml:"params"`

	// Optional marks a leading [..] argument.
	Optional bool `yaml:"optional"`

	// Content marks a trailing brace group that is itself translated.
	Content bool `yaml:"content"`

	// Open is emitted before the content group (or alone when Content is false).
	Open string `yaml:"open"`

	// Close is emitted after the content group.
	Close string `yaml:"close,omitempty"`

	// OpenWithOpt replaces Open when the optional argument is present.
	OpenWithOpt string `yaml:"open_with_opt,omitempty"`
}

// EnvironmentConfig overrides the BBCode rendering of a LaTeX environment.
type EnvironmentConfig struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`

	// Raw copies the body verbatim instead of translating it.
	Raw bool `yaml:"raw,omitempty"`
}

// BBCodeConfig controls the LaTeX to BBCode translator.
type BBCodeConfig struct {
	// InlineMath is the template for $..$ and \(..\); "{body}" is replaced.
	InlineMath string `yaml:"inline_math"`

	// DisplayMath is the template for $$..$$, \[..\] and math environments.
	DisplayMath string `yaml:"display_math"`

	// KeepComments keeps % comments instead of dropping them.
	KeepComments bool `yaml:"keep_comments"`

	// Commands overrides or extends the built-in command table.
	Commands map[string]CommandConfig `yaml:"commands,omitempty"`

	// Environments overrides or extends the built-in environment table.
	Environments map[string]EnvironmentConfig `yaml:"environments,omitempty"`
}

// AsymptoteConfig controls the header emitted by the GeoGebra cleaner and
// the macro translator.
type AsymptoteConfig struct {
	// FontSize is the base font size used in defaultpen().
	FontSize float64 `yaml:"font_size"`

	// LSF overrides the label scale factor. Empty means read it from the file.
	LSF string `yaml:"lsf,omitempty"`

	// LineThickness is the LINE_THICKNESS value.
	LineThickness string `yaml:"line_thickness"`

	// DotThickness is the DOT_THICKNESS value.
	DotThickness string `yaml:"dot_thickness"`

	// Size is the argument of the size() call in the header.
	Size string `yaml:"size"`

	// Signature controls the trailing "created by" comment.
	Signature *bool `yaml:"signature,omitempty"`
}

// SignatureEnabled reports whether the signature comment is written.
func (a AsymptoteConfig) SignatureEnabled() bool {
	return a.Signature == nil || *a.Signature
}

// MarkdownConfig controls the Markdown to BBCode translator.
type MarkdownConfig struct {
	// GFM enables GitHub Flavored Markdown extensions (strikethrough, tables, autolinks).
	GFM bool `yaml:"gfm"`
}

// Config is the root configuration structure for markconv.
type Config struct {
	// Strict turns unsupported constructs into errors instead of pass-through.
	Strict bool `yaml:"strict"`

	// LogLevel is the default log level: debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`

	BBCode    BBCodeConfig    `yaml:"bbcode"`
	Asymptote AsymptoteConfig `yaml:"asymptote"`
	Markdown  MarkdownConfig  `yaml:"markdown"`

	// CLI-level options (not persisted to config files).

	// Output is the file to write to. Empty means stdout.
	Output string `yaml:"-"`

	// Diff prints a unified diff of input and output instead of the output.
	Diff bool `yaml:"-"`

	// From forces a dialect pair for the convert command.
	From string `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		LogLevel: "info",
		BBCode: BBCodeConfig{
			InlineMath:  DefaultInlineMath,
			DisplayMath: DefaultDisplayMath,
		},
		Asymptote: AsymptoteConfig{
			FontSize:      DefaultFontSize,
			LineThickness: DefaultLineThickness,
			DotThickness:  DefaultDotThickness,
			Size:          DefaultSize,
		},
		Markdown: MarkdownConfig{
			GFM: true,
		},
	}
}
