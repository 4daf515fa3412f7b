// Package translate defines the translator contract, the dialect registry,
// and the error taxonomy shared by all markconv translators.
package translate

import (
	"context"
	"fmt"

	"github.com/yaklabco/markconv/pkg/config"
	"github.com/yaklabco/markconv/pkg/source"
)

// Dialect identifies a source/target dialect pairing.
type Dialect string

const (
	DialectLaTeXBBCode    Dialect = "latex-bbcode"
	DialectMarkdownBBCode Dialect = "markdown-bbcode"
	DialectGeoGebraAsy    Dialect = "ggb-asy"
	DialectMacroAsy       Dialect = "macro-asy"
)

// Translator rewrites a document from one dialect into another.
// Implementations hold only immutable configuration and may be reused.
type Translator interface {
	// Dialect returns the pairing this translator implements.
	Dialect() Dialect

	// Translate returns the complete output for doc, or an error and no output.
	Translate(ctx context.Context, doc *source.Document) ([]byte, error)
}

// Factory builds a Translator from configuration.
type Factory func(cfg *config.Config) (Translator, error)

// Registration describes a translator known to a Registry.
type Registration struct {
	Dialect     Dialect
	Command     string
	Description string
	Factory     Factory
}

// New builds the translator registered for dialect in the default registry.
func New(dialect Dialect, cfg *config.Config) (Translator, error) {
	return DefaultRegistry.New(dialect, cfg)
}

// Run is a convenience that builds a translator and runs it once.
func Run(ctx context.Context, dialect Dialect, cfg *config.Config, doc *source.Document) ([]byte, error) {
	tr, err := New(dialect, cfg)
	if err != nil {
		return nil, err
	}
	return tr.Translate(ctx, doc)
}

// CheckContext returns a wrapped context error if ctx is done.
func CheckContext(ctx context.Context, dialect Dialect) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s cancelled: %w", dialect, err)
	}
	return nil
}
