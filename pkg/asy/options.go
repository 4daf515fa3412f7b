// Package asy normalizes GeoGebra-exported Asymptote so that stroke and
// dot thickness are controlled by two header constants.
package asy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/markconv/pkg/config"
)

// ErrInvalidOption is returned when a header option would produce invalid Asymptote.
var ErrInvalidOption = errors.New("invalid asymptote option")

// Options controls the generated header.
type Options struct {
	// FontSize is the base font size passed to defaultpen.
	FontSize float64

	// LSF overrides the label scale factor. Empty means use the value
	// declared in the input, or DefaultLSF.
	LSF string

	LineThickness string
	DotThickness  string

	// Size is the argument of size() in the header.
	Size string

	// Signature appends the "created by" comment.
	Signature bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		FontSize:      config.DefaultFontSize,
		LineThickness: config.DefaultLineThickness,
		DotThickness:  config.DefaultDotThickness,
		Size:          config.DefaultSize,
		Signature:     true,
	}
}

// OptionsFromConfig maps the asymptote section of cfg onto Options,
// filling empty fields with defaults.
func OptionsFromConfig(cfg config.AsymptoteConfig) Options {
	opts := DefaultOptions()
	if cfg.FontSize > 0 {
		opts.FontSize = cfg.FontSize
	}
	opts.LSF = strings.TrimSpace(cfg.LSF)
	if cfg.LineThickness != "" {
		opts.LineThickness = strings.TrimSpace(cfg.LineThickness)
	}
	if cfg.DotThickness != "" {
		opts.DotThickness = strings.TrimSpace(cfg.DotThickness)
	}
	if cfg.Size != "" {
		opts.Size = strings.TrimSpace(cfg.Size)
	}
	opts.Signature = cfg.SignatureEnabled()
	return opts
}

// Validate rejects values that cannot be spliced into the header.
func (o Options) Validate() error {
	if o.FontSize <= 0 {
		return fmt.Errorf("%w: font size must be positive, got %g", ErrInvalidOption, o.FontSize)
	}

	values := []struct {
		name  string
		value string
		must  bool
	}{
		{"lsf", o.LSF, false},
		{"line thickness", o.LineThickness, true},
		{"dot thickness", o.DotThickness, true},
		{"size", o.Size, true},
	}
	for _, v := range values {
		if v.must && v.value == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidOption, v.name)
		}
		if strings.ContainsAny(v.value, ";\n\r") {
			return fmt.Errorf("%w: %s %q must be a single expression", ErrInvalidOption, v.name, v.value)
		}
	}
	return nil
}
