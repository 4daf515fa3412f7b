// Package detect picks a dialect pair for an input file.
// It uses go-enry for extension and content classification and falls
// back to markers that the supported dialects reliably contain.
package detect

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/markconv/pkg/translate"
)

// ErrUndetected is returned when no dialect matches the input.
var ErrUndetected = errors.New("cannot detect input dialect")

// Linguist language names that map to a dialect.
const (
	langTeX       = "TeX"
	langAsymptote = "Asymptote"
	langMarkdown  = "Markdown"
)

//nolint:gochecknoglobals // Immutable lookup tables.
var (
	languageDialects = map[string]translate.Dialect{
		langTeX:       translate.DialectLaTeXBBCode,
		langAsymptote: translate.DialectGeoGebraAsy,
		langMarkdown:  translate.DialectMarkdownBBCode,
	}

	// Extensions linguist does not know.
	macroExtensions = map[string]bool{
		".mac":  true,
		".asym": true,
	}

	classifierCandidates = []string{langTeX, langAsymptote, langMarkdown}

	macroStatement = regexp.MustCompile(`(?m)^[ \t]*(?:point\s+[A-Za-z_]\w*\s*=|seg\s+\S+\s+\S+|poly\s+\S+|begin\s+(?:pen|clip|group)\b)`)
)

// Detect returns the dialect pair for path and content.
func Detect(path string, content []byte) (translate.Dialect, error) {
	// Strategy 1: Extensions that only the macro language uses.
	if macroExtensions[strings.ToLower(filepath.Ext(path))] {
		return translate.DialectMacroAsy, nil
	}

	// Strategy 2: Linguist extension mapping. Ambiguous extensions such
	// as .md yield several candidates; take the first known one.
	if path != "" && path != "-" {
		if lang, safe := enry.GetLanguageByExtension(path); safe {
			if dialect, ok := languageDialects[lang]; ok {
				return dialect, nil
			}
		}
		for _, lang := range enry.GetLanguagesByExtension(path, content, nil) {
			if dialect, ok := languageDialects[lang]; ok {
				return dialect, nil
			}
		}
	}

	// Strategy 3: Content markers.
	if dialect, ok := detectByPattern(content); ok {
		return dialect, nil
	}

	// Strategy 4: Classifier restricted to the supported languages.
	if len(bytes.TrimSpace(content)) > 0 {
		if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe {
			if dialect, ok := languageDialects[lang]; ok {
				return dialect, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s (use --from)", ErrUndetected, displayPath(path))
}

func displayPath(path string) string {
	if path == "" || path == "-" {
		return "<stdin>"
	}
	return path
}

// detectByPattern checks for markers that are highly indicative of one dialect.
func detectByPattern(content []byte) (translate.Dialect, bool) {
	lower := bytes.ToLower(content)

	// GeoGebra always names itself or writes its lsf declaration.
	if bytes.Contains(lower, []byte("geogebra")) ||
		bytes.Contains(content, []byte("real labelscalefactor")) ||
		bytes.Contains(content, []byte("pen dotstyle")) {
		return translate.DialectGeoGebraAsy, true
	}

	if macroStatement.Match(content) {
		return translate.DialectMacroAsy, true
	}

	if bytes.Contains(content, []byte(`\documentclass`)) ||
		bytes.Contains(content, []byte(`\begin{`)) ||
		bytes.Contains(content, []byte(`\section{`)) ||
		bytes.Contains(content, []byte(`\textbf{`)) {
		return translate.DialectLaTeXBBCode, true
	}

	if bytes.Contains(content, []byte("import graph;")) ||
		bytes.Contains(content, []byte("unitsize(")) {
		return translate.DialectGeoGebraAsy, true
	}

	return "", false
}
