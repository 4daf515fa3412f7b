package latex

import (
	"github.com/yaklabco/markconv/pkg/config"
	"github.com/yaklabco/markconv/pkg/translate"
)

func init() {
	translate.DefaultRegistry.Register(translate.Registration{
		Dialect:     translate.DialectLaTeXBBCode,
		Command:     "latex2bbcode",
		Description: "Translate LaTeX markup to BBCode with [tex] math",
		Factory: func(cfg *config.Config) (translate.Translator, error) {
			return NewTranslator(cfg)
		},
	})
}
