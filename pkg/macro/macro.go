// Package macro expands the legacy figure macro language into Asymptote.
//
// The language is line oriented. A line is a macro statement, a comment,
// a block delimiter, or Asymptote that is copied through unchanged:
//
//	point A = (0,0)
//	point B = (4,0)
//	begin pen blue
//	seg A B
//	end
//	label A "$A$" SW
//
// Expanded output is normalized by the asy cleaner so it carries the same
// header as a cleaned GeoGebra export.
package macro

import (
	"context"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/markconv/internal/logging"
	"github.com/yaklabco/markconv/pkg/asy"
	"github.com/yaklabco/markconv/pkg/config"
	"github.com/yaklabco/markconv/pkg/source"
	"github.com/yaklabco/markconv/pkg/translate"
)

// Statement keywords.
const (
	kwPoint    = "point"
	kwSeg      = "seg"
	kwRay      = "ray"
	kwPoly     = "poly"
	kwCircle   = "circle"
	kwCirc     = "circ"
	kwFill     = "fill"
	kwDot      = "dot"
	kwLabel    = "label"
	kwUnitsize = "unitsize"
	kwBegin    = "begin"
	kwEnd      = "end"
)

// Legacy statements that have no Asymptote expansion.
//
//nolint:gochecknoglobals // Immutable lookup table.
var unsupportedKeywords = map[string]bool{
	"angle": true,
	"arc":   true,
	"axes":  true,
	"grid":  true,
	"tick":  true,
}

//nolint:gochecknoglobals // Compiled once.
var pairDeclaration = regexp.MustCompile(`(?:^pair\s+|,\s*)([A-Za-z_]\w*)\s*=`)

// Translator expands macro documents.
type Translator struct {
	opts   asy.Options
	strict bool
}

// NewTranslator creates a translator using the asymptote section of cfg
// for the generated header.
func NewTranslator(cfg *config.Config) (*Translator, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	opts := asy.OptionsFromConfig(cfg.Asymptote)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Translator{opts: opts, strict: cfg.Strict}, nil
}

// Dialect implements translate.Translator.
func (t *Translator) Dialect() translate.Dialect {
	return translate.DialectMacroAsy
}

// Translate implements translate.Translator.
func (t *Translator) Translate(ctx context.Context, doc *source.Document) ([]byte, error) {
	body, err := t.Expand(ctx, doc)
	if err != nil {
		return nil, err
	}
	return []byte(asy.Clean(body, t.opts)), nil
}

// Expand rewrites macro statements and copies every other line through.
// It does not add the Asymptote header.
func (t *Translator) Expand(ctx context.Context, doc *source.Document) (string, error) {
	if err := translate.CheckContext(ctx, t.Dialect()); err != nil {
		return "", err
	}

	exp := &expansion{
		translator: t,
		doc:        doc,
		logger:     logging.FromContext(ctx),
		points:     make(map[string]bool),
	}
	if err := exp.run(ctx); err != nil {
		return "", err
	}
	return exp.result(), nil
}

type blockKind int

const (
	blockPen blockKind = iota
	blockClip
	blockGroup
)

func (k blockKind) String() string {
	switch k {
	case blockPen:
		return "pen"
	case blockClip:
		return "clip"
	default:
		return "group"
	}
}

// block is an open begin..end region.
type block struct {
	kind   blockKind
	pen    string
	points []string
	offset int
}

// expansion is the state of one Expand call.
type expansion struct {
	translator *Translator
	doc        *source.Document
	logger     *log.Logger

	out      []string
	stack    []block
	points   map[string]bool
	geometry bool
}

func (e *expansion) result() string {
	lines := e.out
	if e.geometry {
		lines = append([]string{"import geometry;"}, lines...)
	}
	return strings.Join(lines, "\n")
}

func (e *expansion) run(ctx context.Context) error {
	for lineNum := 1; lineNum <= e.doc.LineCount(); lineNum++ {
		if lineNum%256 == 0 {
			if err := translate.CheckContext(ctx, e.translator.Dialect()); err != nil {
				return err
			}
		}

		start, _ := e.doc.LineStart(lineNum)
		line := strings.TrimSuffix(string(e.doc.Line(lineNum)), "\r")
		if err := e.line(line, start); err != nil {
			return err
		}
	}

	if len(e.stack) > 0 {
		open := e.stack[len(e.stack)-1]
		return translate.Malformed(e.doc, open.offset, kwBegin+" "+open.kind.String(),
			"begin %s is never closed", open.kind)
	}
	return nil
}

func (e *expansion) emit(line string) {
	e.out = append(e.out, line)
}

// keyword returns the leading word of a statement when it is followed by
// whitespace or the end of the line.
func keyword(trimmed string) string {
	end := 0
	for end < len(trimmed) && isWordByte(trimmed[end]) {
		end++
	}
	if end == 0 {
		return ""
	}
	if end < len(trimmed) && trimmed[end] != ' ' && trimmed[end] != '\t' {
		return ""
	}
	return trimmed[:end]
}

// isAsymptoteStatement reports whether a line is already Asymptote: it
// ends in ";", optionally followed by a // comment. Macro statements never do.
func isAsymptoteStatement(trimmed string) bool {
	code := strings.TrimRight(trimmed, " \t")
	if strings.HasSuffix(code, ";") {
		return true
	}
	if idx := strings.LastIndex(code, "//"); idx > 0 {
		return strings.HasSuffix(strings.TrimRight(code[:idx], " \t"), ";")
	}
	return false
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (e *expansion) line(line string, lineStart int) error {
	trimmed := strings.TrimLeft(line, " \t")
	indent := len(line) - len(trimmed)
	offset := lineStart + indent

	if trimmed == "" {
		e.emit(line)
		return nil
	}

	if trimmed[0] == '%' || trimmed[0] == '#' {
		text := strings.TrimSpace(trimmed[1:])
		if text == "" {
			e.emit(line[:indent] + "//")
		} else {
			e.emit(line[:indent] + "// " + text)
		}
		return nil
	}

	if isAsymptoteStatement(trimmed) {
		e.notePairs(trimmed)
		e.emit(line)
		return nil
	}

	word := keyword(trimmed)
	rest := strings.TrimSpace(trimmed[len(word):])
	argsBase := offset + len(trimmed) - len(strings.TrimLeft(trimmed[len(word):], " \t"))

	stmt := statement{
		keyword: word,
		offset:  offset,
		indent:  line[:indent],
	}

	switch word {
	case kwPoint, kwSeg, kwRay, kwPoly, kwCircle, kwCirc, kwFill, kwDot, kwLabel, kwUnitsize, kwBegin, kwEnd:
		args, ok := splitFields(rest, 0)
		if !ok {
			return translate.Malformed(e.doc, offset, word, "unbalanced quotes or parentheses in %s", word)
		}
		for idx := range args {
			args[idx].offset += argsBase
		}
		stmt.args = args
		stmt.raw = rest
		return e.statement(stmt)
	}

	if unsupportedKeywords[word] {
		if e.translator.strict {
			return translate.Unsupported(e.doc, offset, word)
		}
		pos := translate.PositionAt(e.doc, offset)
		e.logger.Warn("passing through unsupported construct",
			logging.FieldConstruct, word,
			logging.FieldLine, pos.Line,
			logging.FieldColumn, pos.Column,
		)
	}

	e.notePairs(trimmed)
	e.emit(line)
	return nil
}

// notePairs records names declared by pass-through "pair" statements.
func (e *expansion) notePairs(trimmed string) {
	if !strings.HasPrefix(trimmed, "pair ") && !strings.HasPrefix(trimmed, "pair\t") {
		return
	}
	for _, match := range pairDeclaration.FindAllStringSubmatch(trimmed, -1) {
		e.points[match[1]] = true
	}
}

// currentPen returns the innermost pen block expression.
func (e *expansion) currentPen() string {
	for idx := len(e.stack) - 1; idx >= 0; idx-- {
		if e.stack[idx].kind == blockPen {
			return e.stack[idx].pen
		}
	}
	return ""
}
