// Package markdown translates Markdown to BBCode using goldmark.
package markdown

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/markconv/pkg/config"
	"github.com/yaklabco/markconv/pkg/source"
	"github.com/yaklabco/markconv/pkg/translate"
)

// Flavor identifies the Markdown flavor accepted by the translator.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// rendererPriority places the BBCode renderer above the HTML renderers
// that goldmark extensions register.
const rendererPriority = 1000

// Translator converts Markdown to BBCode. Markdown has no malformed
// state, so Translate only fails on cancellation or write errors.
type Translator struct {
	flavor string
	md     goldmark.Markdown
}

// NewTranslator creates a translator from the markdown section of cfg.
func NewTranslator(cfg *config.Config) (*Translator, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	flavor := FlavorCommonMark
	if cfg.Markdown.GFM {
		flavor = FlavorGFM
	}

	return &Translator{
		flavor: flavor,
		md:     newGoldmarkInstance(flavor),
	}, nil
}

// Flavor returns the configured Markdown flavor.
func (t *Translator) Flavor() string {
	return t.flavor
}

// Dialect implements translate.Translator.
func (t *Translator) Dialect() translate.Dialect {
	return translate.DialectMarkdownBBCode
}

// Translate implements translate.Translator.
func (t *Translator) Translate(ctx context.Context, doc *source.Document) ([]byte, error) {
	if err := translate.CheckContext(ctx, t.Dialect()); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := t.md.Convert(doc.Content, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", doc.Path, err)
	}

	if err := translate.CheckContext(ctx, t.Dialect()); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	if len(out) == 0 {
		return out, nil
	}
	return append(out, '\n'), nil
}

// newGoldmarkInstance creates a goldmark.Markdown that renders BBCode.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	opts := []goldmark.Option{
		goldmark.WithRenderer(renderer.NewRenderer(
			renderer.WithNodeRenderers(util.Prioritized(NewRenderer(), rendererPriority)),
		)),
	}

	switch flavor {
	case FlavorGFM:
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}
