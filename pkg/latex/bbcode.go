// Package latex translates LaTeX markup to BBCode.
//
// The translator is a single pass over the token stream. Open constructs
// (brace groups, formatting spans, environments) live on an explicit stack
// so deeply nested input cannot exhaust the call stack.
package latex

import (
	"bytes"
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/markconv/internal/logging"
	"github.com/yaklabco/markconv/pkg/config"
	"github.com/yaklabco/markconv/pkg/source"
	"github.com/yaklabco/markconv/pkg/translate"
)

// Translator converts LaTeX documents to BBCode.
type Translator struct {
	tables       *tables
	inlineMath   string
	displayMath  string
	keepComments bool
	strict       bool
}

// NewTranslator creates a translator from the BBCode section of cfg.
func NewTranslator(cfg *config.Config) (*Translator, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	tbl, err := buildTables(cfg.BBCode)
	if err != nil {
		return nil, err
	}

	inline := cfg.BBCode.InlineMath
	if inline == "" {
		inline = config.DefaultInlineMath
	}
	display := cfg.BBCode.DisplayMath
	if display == "" {
		display = config.DefaultDisplayMath
	}

	return &Translator{
		tables:       tbl,
		inlineMath:   inline,
		displayMath:  display,
		keepComments: cfg.BBCode.KeepComments,
		strict:       cfg.Strict,
	}, nil
}

// Dialect implements translate.Translator.
func (t *Translator) Dialect() translate.Dialect {
	return translate.DialectLaTeXBBCode
}

// Translate implements translate.Translator.
func (t *Translator) Translate(ctx context.Context, doc *source.Document) ([]byte, error) {
	if err := translate.CheckContext(ctx, t.Dialect()); err != nil {
		return nil, err
	}

	conv := &conversion{
		translator: t,
		doc:        doc,
		lexer:      NewLexer(doc),
		logger:     logging.FromContext(ctx),
	}
	if err := conv.run(ctx); err != nil {
		return nil, err
	}
	return conv.out.Bytes(), nil
}

type frameKind int

const (
	frameGroup frameKind = iota
	frameSpan
	frameEnv
)

// frame is an open construct awaiting its closing token.
type frame struct {
	kind   frameKind
	name   string
	close  string
	offset int
}

func (f frame) describe() string {
	switch f.kind {
	case frameEnv:
		return `\begin{` + f.name + `}`
	case frameSpan:
		return `\` + f.name + `{`
	default:
		return "{"
	}
}

// conversion is the per-document state of one translation.
type conversion struct {
	translator *Translator
	doc        *source.Document
	lexer      *Lexer
	logger     *log.Logger
	out        bytes.Buffer
	stack      []frame
}

// cancelCheckInterval is how many tokens are processed between context checks.
const cancelCheckInterval = 1024

func (c *conversion) run(ctx context.Context) error {
	for count := 0; ; count++ {
		if count%cancelCheckInterval == cancelCheckInterval-1 {
			if err := translate.CheckContext(ctx, c.translator.Dialect()); err != nil {
				return err
			}
		}

		tok, err := c.lexer.Next()
		if err != nil {
			return err
		}

		switch tok.Kind {
		case KindEOF:
			return c.finish()
		case KindText:
			c.out.WriteString(tok.Value)
		case KindComment:
			if c.translator.keepComments {
				c.out.WriteString(c.lexer.Slice(tok))
			}
		case KindSymbol:
			c.symbol(tok)
		case KindGroupOpen:
			c.push(frame{kind: frameGroup, close: "}", offset: tok.Offset})
			c.out.WriteString("{")
		case KindGroupClose:
			err = c.closeGroup(tok)
		case KindMath:
			c.math(tok)
		case KindVerb:
			spec, _ := c.translator.tables.command("verb", false)
			c.out.WriteString(spec.open + tok.Value + spec.close)
		case KindCommand:
			err = c.command(tok)
		case KindBegin:
			err = c.begin(tok)
		case KindEnd:
			err = c.end(tok)
		}
		if err != nil {
			return err
		}
	}
}

func (c *conversion) push(f frame) {
	c.stack = append(c.stack, f)
}

func (c *conversion) top() (frame, bool) {
	if len(c.stack) == 0 {
		return frame{}, false
	}
	return c.stack[len(c.stack)-1], true
}

func (c *conversion) pop() {
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *conversion) finish() error {
	if open, ok := c.top(); ok {
		return translate.Malformed(c.doc, open.offset, open.describe(),
			"%s is never closed", open.describe())
	}
	return nil
}

func (c *conversion) symbol(tok Token) {
	switch tok.Value {
	case `\\`:
		c.out.WriteString("\n")
		c.lexer.SkipSpacingArg()
	case "~":
		c.out.WriteString(" ")
	default:
		c.out.WriteString(tok.Value)
	}
}

func (c *conversion) math(tok Token) {
	if tok.Display {
		c.out.WriteString(mathTemplate(c.translator.displayMath, strings.TrimSpace(tok.Value)))
		return
	}
	c.out.WriteString(mathTemplate(c.translator.inlineMath, tok.Value))
}

func (c *conversion) closeGroup(tok Token) error {
	open, ok := c.top()
	if !ok {
		return translate.Malformed(c.doc, tok.Offset, "}", "unmatched closing brace")
	}
	if open.kind == frameEnv {
		pos := translate.PositionAt(c.doc, open.offset)
		return translate.Malformed(c.doc, tok.Offset, "}",
			"closing brace inside \\begin{%s} opened at line %d", open.name, pos.Line)
	}
	c.pop()
	c.out.WriteString(open.close)
	return nil
}

func (c *conversion) unsupported(tok Token, construct string) error {
	if c.translator.strict {
		return translate.Unsupported(c.doc, tok.Offset, construct)
	}
	pos := translate.PositionAt(c.doc, tok.Offset)
	c.logger.Warn("passing through unsupported construct",
		logging.FieldConstruct, construct,
		logging.FieldLine, pos.Line,
		logging.FieldColumn, pos.Column,
	)
	return nil
}

func (c *conversion) command(tok Token) error {
	spec, ok := c.translator.tables.command(tok.Value, tok.Star)
	if !ok {
		if unsupportedCommands[tok.Value] {
			if err := c.unsupported(tok, `\`+tok.Value); err != nil {
				return err
			}
		}
		// Unknown commands degrade to literal text; their arguments
		// follow as ordinary groups.
		c.out.WriteString(c.lexer.Slice(tok))
		return nil
	}

	var (
		opt    string
		hasOpt bool
		err    error
	)
	if spec.optional {
		opt, hasOpt, err = c.lexer.OptionalArg()
		if err != nil {
			return err
		}
	}

	params := make([]string, 0, spec.params)
	for range spec.params {
		param, found, err := c.lexer.RawGroup()
		if err != nil {
			return err
		}
		if !found {
			return translate.Malformed(c.doc, tok.Offset, `\`+tok.Value,
				"\\%s expects %d argument(s)", tok.Value, spec.params)
		}
		params = append(params, param)
	}

	open := spec.open
	if hasOpt && spec.openWithOpt != "" {
		open = spec.openWithOpt
	}
	c.out.WriteString(expand(open, params, opt))

	if !spec.content {
		if spec.params == 0 && isLetter(tok.Value[0]) {
			c.lexer.SkipInlineSpace()
		}
		c.out.WriteString(expand(spec.close, params, opt))
		return nil
	}

	offset, found := c.lexer.OpenGroup()
	if !found {
		return translate.Malformed(c.doc, offset, `\`+tok.Value,
			"\\%s expects a {...} argument", tok.Value)
	}
	c.push(frame{
		kind:   frameSpan,
		name:   tok.Value,
		close:  expand(spec.close, params, opt),
		offset: tok.Offset,
	})
	return nil
}

func (c *conversion) begin(tok Token) error {
	name := tok.Value
	spec, ok := c.translator.tables.environments[name]
	if !ok {
		if unsupportedEnvironments[name] {
			if err := c.unsupported(tok, `\begin{`+name+`}`); err != nil {
				return err
			}
		}
		c.out.WriteString(c.lexer.Slice(tok))
		c.push(frame{kind: frameEnv, name: name, close: `\end{` + name + `}`, offset: tok.Offset})
		return nil
	}

	if spec.optional {
		if _, _, err := c.lexer.OptionalArg(); err != nil {
			return err
		}
	}

	if spec.math == mathNone && !spec.raw {
		c.out.WriteString(spec.open)
		c.push(frame{kind: frameEnv, name: name, close: spec.close, offset: tok.Offset})
		return nil
	}

	body, bodyStart, found := c.lexer.RawUntilEnd(name)
	if !found {
		return translate.Malformed(c.doc, tok.Offset, `\begin{`+name+`}`,
			"\\begin{%s} is never closed", name)
	}
	if spec.math != mathNone {
		if err := c.lexer.CheckMathBraces(bodyStart, bodyStart+len(body)); err != nil {
			return err
		}
	}

	switch spec.math {
	case mathBody:
		c.out.WriteString(mathTemplate(c.translator.displayMath, strings.TrimSpace(body)))
	case mathWrapped:
		starred := strings.TrimSuffix(name, "*") + "*"
		wrapped := `\begin{` + starred + `}` + body + `\end{` + starred + `}`
		c.out.WriteString(mathTemplate(c.translator.displayMath, wrapped))
	default:
		if !spec.drop {
			c.out.WriteString(spec.open + body + spec.close)
		}
	}
	return nil
}

func (c *conversion) end(tok Token) error {
	name := tok.Value
	open, ok := c.top()
	if !ok {
		return translate.Malformed(c.doc, tok.Offset, `\end{`+name+`}`,
			"\\end{%s} without matching \\begin", name)
	}

	pos := translate.PositionAt(c.doc, open.offset)
	if open.kind != frameEnv {
		return translate.Malformed(c.doc, tok.Offset, `\end{`+name+`}`,
			"\\end{%s} while %s from line %d is still open", name, open.describe(), pos.Line)
	}
	if open.name != name {
		return translate.Malformed(c.doc, tok.Offset, `\end{`+name+`}`,
			"\\end{%s} does not match \\begin{%s} at line %d", name, open.name, pos.Line)
	}

	c.pop()
	c.out.WriteString(open.close)
	return nil
}
