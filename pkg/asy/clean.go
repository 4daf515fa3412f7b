package asy

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultLSF is used when neither the input nor the options set a label scale factor.
const DefaultLSF = "0.5"

// Signature is the trailing comment appended to cleaned output.
const Signature = "// created by markconv ggbparse"

const headerTemplate = `import graph; size({size});
real lsf = {lsf};
real fontsize = {fontsize};
real LINE_THICKNESS = {line};
real DOT_THICKNESS  = {dot};

defaultpen(linewidth(LINE_THICKNESS) + fontsize(fontsize));
pen ds = black, dp = linewidth(DOT_THICKNESS) + ds;
`

//nolint:gochecknoglobals // Compiled once.
var (
	lsfDeclaration = regexp.MustCompile(`\breal\s+(?:lsf|labelscalefactor)\s*=\s*([^;]+);`)

	// Statements replaced by the generated header, including the header
	// itself so that cleaning is idempotent.
	headerStatements = []*regexp.Regexp{
		regexp.MustCompile(`\bpen\s+dps\s*=\s*[^;]+;\s*`),
		regexp.MustCompile(`\bdefaultpen\s*\(\s*dps\s*\)\s*;\s*`),
		regexp.MustCompile(`\bimport\s+graph\s*;\s*`),
		regexp.MustCompile(`(?i)\bsize\s*\([^;]+\)\s*;\s*`),
		regexp.MustCompile(`\breal\s+(?:lsf|labelscalefactor)\s*=\s*[^;]+;\s*`),
		regexp.MustCompile(`\bdefaultpen\s*\([^;]+\)\s*;\s*`),
		regexp.MustCompile(`\bpen\s+dotstyle\s*=\s*[^;]+;\s*`),
		regexp.MustCompile(`\breal\s+(?:fontsize|LINE_THICKNESS|DOT_THICKNESS)\s*=\s*[^;]+;\s*`),
		regexp.MustCompile(`\bpen\s+ds\s*=\s*black\s*,\s*dp\s*=\s*[^;]+;\s*`),
		regexp.MustCompile(`(?m)^[ \t]*//[ \t]*created by (?:markconv ggbparse|ggbparse\.py).*\n?`),
	}

	// Comments on a line of their own take the line with them; trailing
	// comments leave the statement and its newline in place.
	lineComment   = regexp.MustCompile(`(?ms)^[ \t]*/\*(.*?)\*/[ \t]*\n?`)
	inlineComment = regexp.MustCompile(`[ \t]*/\*(?s:(.*?))\*/`)

	strokeWidth   = regexp.MustCompile(`linewidth\(\s*[\d.]+(?:pt)?\s*\)`)
	dotWithWidth  = regexp.MustCompile(`\bdot\(\s*([^;]*?)\s*,\s*linewidth\([^)]*\)\s*\+\s*(?:ds|dotstyle)\s*\)`)
	dotWithPen    = regexp.MustCompile(`\bdot\(\s*([^;]*?)\s*,\s*(?:ds|dotstyle)\s*\)`)
	scaleFactorID = regexp.MustCompile(`\blabelscalefactor\b`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// geogebraMarkers are the section comments GeoGebra writes into its export.
//
//nolint:gochecknoglobals // Immutable lookup table.
var geogebraMarkers = map[string]bool{
	"draw figures":                    true,
	"dots and labels":                 true,
	"end of picture":                  true,
	"draw grid":                       true,
	"draw axes":                       true,
	"fill figures":                    true,
	"changes label-to-point distance": true,
	"default pen style":               true,
	"point style":                     true,
	"image dimensions":                true,
}

func isGeoGebraComment(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	return geogebraMarkers[text] || strings.Contains(text, "geogebra")
}

// ExtractLSF returns the label scale factor declared in text, if any.
func ExtractLSF(text string) (string, bool) {
	match := lsfDeclaration.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return strings.TrimSpace(match[1]), true
}

// Header renders the generated header for lsf and opts.
func Header(lsf string, opts Options) string {
	return strings.NewReplacer(
		"{size}", opts.Size,
		"{lsf}", lsf,
		"{fontsize}", strconv.FormatFloat(opts.FontSize, 'g', -1, 64),
		"{line}", opts.LineThickness,
		"{dot}", opts.DotThickness,
	).Replace(headerTemplate)
}

// Clean rewrites a GeoGebra Asymptote export. Applying Clean to its own
// output with the same options returns the output unchanged.
func Clean(text string, opts Options) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	lsf := opts.LSF
	if lsf == "" {
		if found, ok := ExtractLSF(text); ok {
			lsf = found
		} else {
			lsf = DefaultLSF
		}
	}

	body := Normalize(text)

	parts := []string{Header(lsf, opts), body}
	if opts.Signature {
		parts = append(parts, Signature)
	}
	return strings.TrimSpace(strings.Join(parts, "\n")) + "\n"
}

// Normalize applies the body rewrites of Clean without adding a header.
func Normalize(body string) string {
	for _, re := range headerStatements {
		body = re.ReplaceAllString(body, "")
	}

	body = stripComments(body, lineComment)
	body = stripComments(body, inlineComment)

	body = strokeWidth.ReplaceAllString(body, "linewidth(LINE_THICKNESS)")
	body = dotWithWidth.ReplaceAllString(body, "dot($1, dp)")
	body = dotWithPen.ReplaceAllString(body, "dot($1, dp)")
	body = scaleFactorID.ReplaceAllString(body, "lsf")
	body = blankRuns.ReplaceAllString(body, "\n\n")

	return strings.TrimSpace(body)
}

func stripComments(body string, re *regexp.Regexp) string {
	return re.ReplaceAllStringFunc(body, func(comment string) string {
		if isGeoGebraComment(re.FindStringSubmatch(comment)[1]) {
			return ""
		}
		return comment
	})
}
