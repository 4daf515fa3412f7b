package asy

import (
	"context"

	"github.com/yaklabco/markconv/internal/logging"
	"github.com/yaklabco/markconv/pkg/config"
	"github.com/yaklabco/markconv/pkg/source"
	"github.com/yaklabco/markconv/pkg/translate"
)

// Cleaner is the translator for GeoGebra Asymptote exports.
type Cleaner struct {
	opts Options
}

// NewCleaner creates a cleaner after validating opts.
func NewCleaner(opts Options) (*Cleaner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Cleaner{opts: opts}, nil
}

// Options returns the cleaner's header options.
func (c *Cleaner) Options() Options {
	return c.opts
}

// Dialect implements translate.Translator.
func (c *Cleaner) Dialect() translate.Dialect {
	return translate.DialectGeoGebraAsy
}

// Translate implements translate.Translator. Cleaning never fails on
// content; only cancellation is reported.
func (c *Cleaner) Translate(ctx context.Context, doc *source.Document) ([]byte, error) {
	if err := translate.CheckContext(ctx, c.Dialect()); err != nil {
		return nil, err
	}

	text := doc.String()
	if c.opts.LSF == "" {
		if _, ok := ExtractLSF(text); !ok {
			logging.FromContext(ctx).Debug("no label scale factor in input, using default",
				logging.FieldPath, doc.Path, "lsf", DefaultLSF)
		}
	}

	return []byte(Clean(text, c.opts)), nil
}

func init() {
	translate.DefaultRegistry.Register(translate.Registration{
		Dialect:     translate.DialectGeoGebraAsy,
		Command:     "ggbparse",
		Description: "Rewrite GeoGebra-exported Asymptote to use LINE_THICKNESS and DOT_THICKNESS",
		Factory: func(cfg *config.Config) (translate.Translator, error) {
			return NewCleaner(OptionsFromConfig(cfg.Asymptote))
		},
	})
}
