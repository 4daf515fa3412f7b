package markdown

import (
	"github.com/yaklabco/markconv/pkg/config"
	"github.com/yaklabco/markconv/pkg/translate"
)

func init() {
	translate.DefaultRegistry.Register(translate.Registration{
		Dialect:     translate.DialectMarkdownBBCode,
		Command:     "md2bbcode",
		Description: "Translate Markdown to BBCode",
		Factory: func(cfg *config.Config) (translate.Translator, error) {
			return NewTranslator(cfg)
		},
	})
}
