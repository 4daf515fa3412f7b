package cli

// Translator packages register themselves with translate.DefaultRegistry.
import (
	_ "github.com/yaklabco/markconv/pkg/asy"
	_ "github.com/yaklabco/markconv/pkg/latex"
	_ "github.com/yaklabco/markconv/pkg/macro"
	_ "github.com/yaklabco/markconv/pkg/markdown"
)
