package macro

import (
	"github.com/yaklabco/markconv/pkg/config"
	"github.com/yaklabco/markconv/pkg/translate"
)

func init() {
	translate.DefaultRegistry.Register(translate.Registration{
		Dialect:     translate.DialectMacroAsy,
		Command:     "macro2asy",
		Description: "Expand legacy figure macros into Asymptote",
		Factory: func(cfg *config.Config) (translate.Translator, error) {
			return NewTranslator(cfg)
		},
	})
}
