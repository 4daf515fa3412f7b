package latex

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/markconv/pkg/source"
	"github.com/yaklabco/markconv/pkg/translate"
)

// Lexer splits a LaTeX document into tokens. It never recurses: nested
// braces inside raw arguments are tracked with a depth counter.
type Lexer struct {
	doc *source.Document
	src []byte
	pos int
}

// NewLexer creates a lexer positioned at the start of doc.
func NewLexer(doc *source.Document) *Lexer {
	return &Lexer{doc: doc, src: doc.Content}
}

// Offset returns the current byte position.
func (l *Lexer) Offset() int {
	return l.pos
}

// Slice returns the source bytes of a token as a string.
func (l *Lexer) Slice(tok Token) string {
	return string(l.src[tok.Offset:tok.End])
}

// Next returns the next token. Malformed constructs are reported as
// *translate.MalformedInputError.
func (l *Lexer) Next() (Token, error) {
	if l.pos >= len(l.src) {
		return Token{Kind: KindEOF, Offset: l.pos, End: l.pos}, nil
	}

	start := l.pos
	switch l.src[start] {
	case '{':
		l.pos++
		return l.token(KindGroupOpen, start, "{"), nil
	case '}':
		l.pos++
		return l.token(KindGroupClose, start, "}"), nil
	case '~':
		l.pos++
		return l.token(KindSymbol, start, "~"), nil
	case '%':
		return l.readComment(start), nil
	case '$':
		return l.readDollarMath(start)
	case '\\':
		return l.readBackslash(start)
	default:
		return l.readText(start), nil
	}
}

func (l *Lexer) token(kind Kind, start int, value string) Token {
	return Token{Kind: kind, Value: value, Offset: start, End: l.pos}
}

func isSpecial(c byte) bool {
	switch c {
	case '\\', '{', '}', '$', '%', '~':
		return true
	default:
		return false
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '@'
}

func (l *Lexer) readText(start int) Token {
	for l.pos < len(l.src) && !isSpecial(l.src[l.pos]) {
		l.pos++
	}
	return l.token(KindText, start, string(l.src[start:l.pos]))
}

// readComment consumes "%" through the end of line, including the newline.
func (l *Lexer) readComment(start int) Token {
	l.pos++
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	text := strings.TrimSuffix(string(l.src[start+1:l.pos]), "\r")
	if l.pos < len(l.src) {
		l.pos++
	}
	return l.token(KindComment, start, text)
}

func (l *Lexer) readDollarMath(start int) (Token, error) {
	display := start+1 < len(l.src) && l.src[start+1] == '$'
	delim := "$"
	if display {
		delim = "$$"
	}

	bodyStart := start + len(delim)
	for idx := bodyStart; idx < len(l.src); idx++ {
		switch l.src[idx] {
		case '\\':
			idx++
		case '$':
			if !display {
				if err := l.CheckMathBraces(bodyStart, idx); err != nil {
					return Token{}, err
				}
				l.pos = idx + 1
				return Token{
					Kind: KindMath, Value: string(l.src[bodyStart:idx]), Delim: delim,
					Offset: start, End: l.pos,
				}, nil
			}
			if idx+1 < len(l.src) && l.src[idx+1] == '$' {
				if err := l.CheckMathBraces(bodyStart, idx); err != nil {
					return Token{}, err
				}
				l.pos = idx + 2
				return Token{
					Kind: KindMath, Value: string(l.src[bodyStart:idx]), Delim: delim, Display: true,
					Offset: start, End: l.pos,
				}, nil
			}
		}
	}

	return Token{}, translate.Malformed(l.doc, start, delim, "unterminated math mode opened with %s", delim)
}

func (l *Lexer) readBackslash(start int) (Token, error) {
	if start+1 >= len(l.src) {
		l.pos = len(l.src)
		return l.token(KindText, start, "\\"), nil
	}

	next := l.src[start+1]
	switch {
	case isLetter(next):
		end := start + 1
		for end < len(l.src) && isLetter(l.src[end]) {
			end++
		}
		name := string(l.src[start+1 : end])
		l.pos = end

		switch name {
		case "begin":
			return l.readEnvironment(start, KindBegin, name)
		case "end":
			return l.readEnvironment(start, KindEnd, name)
		case "verb":
			return l.readVerb(start)
		}

		star := false
		if l.pos < len(l.src) && l.src[l.pos] == '*' {
			star = true
			l.pos++
		}
		return Token{Kind: KindCommand, Value: name, Star: star, Offset: start, End: l.pos}, nil

	case next == '(':
		return l.readDelimitedMath(start, `\)`, false)
	case next == '[':
		return l.readDelimitedMath(start, `\]`, true)
	case next == '\\':
		l.pos = start + 2
		return l.token(KindSymbol, start, `\\`), nil
	case strings.IndexByte("%$&#_{}", next) >= 0:
		l.pos = start + 2
		return l.token(KindSymbol, start, string(next)), nil
	default:
		r, size := utf8.DecodeRune(l.src[start+1:])
		l.pos = start + 1 + size
		return Token{Kind: KindCommand, Value: string(r), Offset: start, End: l.pos}, nil
	}
}

func (l *Lexer) readEnvironment(start int, kind Kind, word string) (Token, error) {
	idx := l.skipSpaceFrom(l.pos)
	if idx >= len(l.src) || l.src[idx] != '{' {
		return Token{}, translate.Malformed(l.doc, start, `\`+word,
			"expected {environment name} after \\%s", word)
	}

	closing := bytes.IndexByte(l.src[idx+1:], '}')
	if closing < 0 {
		return Token{}, translate.Malformed(l.doc, start, `\`+word, "unterminated environment name")
	}

	name := strings.TrimSpace(string(l.src[idx+1 : idx+1+closing]))
	if name == "" {
		return Token{}, translate.Malformed(l.doc, start, `\`+word, "empty environment name")
	}

	l.pos = idx + closing + 2
	return Token{Kind: kind, Value: name, Offset: start, End: l.pos}, nil
}

func (l *Lexer) readVerb(start int) (Token, error) {
	if l.pos < len(l.src) && l.src[l.pos] == '*' {
		l.pos++
	}
	if l.pos >= len(l.src) || isLetter(l.src[l.pos]) || l.src[l.pos] == ' ' || l.src[l.pos] == '\n' {
		return Token{}, translate.Malformed(l.doc, start, `\verb`, "missing \\verb delimiter")
	}

	delim := l.src[l.pos]
	bodyStart := l.pos + 1
	for idx := bodyStart; idx < len(l.src); idx++ {
		switch l.src[idx] {
		case delim:
			l.pos = idx + 1
			return Token{Kind: KindVerb, Value: string(l.src[bodyStart:idx]), Offset: start, End: l.pos}, nil
		case '\n':
			return Token{}, translate.Malformed(l.doc, start, `\verb`, "\\verb body crosses a line break")
		}
	}
	return Token{}, translate.Malformed(l.doc, start, `\verb`, "unterminated \\verb")
}

func (l *Lexer) readDelimitedMath(start int, closing string, display bool) (Token, error) {
	open := string(l.src[start : start+2])
	bodyStart := start + 2
	idx := bytes.Index(l.src[bodyStart:], []byte(closing))
	if idx < 0 {
		return Token{}, translate.Malformed(l.doc, start, open, "unterminated math mode opened with %s", open)
	}

	if err := l.CheckMathBraces(bodyStart, bodyStart+idx); err != nil {
		return Token{}, err
	}

	l.pos = bodyStart + idx + len(closing)
	return Token{
		Kind: KindMath, Value: string(l.src[bodyStart : bodyStart+idx]), Delim: open, Display: display,
		Offset: start, End: l.pos,
	}, nil
}

// CheckMathBraces verifies that the math body in src[start:end] has
// balanced braces. Escaped \{ and \} do not count.
func (l *Lexer) CheckMathBraces(start, end int) error {
	var open []int
	for idx := start; idx < end; idx++ {
		switch l.src[idx] {
		case '\\':
			idx++
		case '{':
			open = append(open, idx)
		case '}':
			if len(open) == 0 {
				return translate.Malformed(l.doc, idx, "}", "closing brace with math mode still open")
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return translate.Malformed(l.doc, open[len(open)-1], "{", "brace opened in math mode is never closed")
	}
	return nil
}

// skipSpaceFrom returns the index of the first non-whitespace byte at or after idx.
func (l *Lexer) skipSpaceFrom(idx int) int {
	for idx < len(l.src) {
		switch l.src[idx] {
		case ' ', '\t', '\r', '\n':
			idx++
		default:
			return idx
		}
	}
	return idx
}

// SkipInlineSpace consumes spaces and tabs, leaving line breaks in place.
func (l *Lexer) SkipInlineSpace() {
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
		l.pos++
	}
}

// OpenGroup consumes optional whitespace and a "{". It reports the offset
// of the brace, or false without consuming anything if no group follows.
func (l *Lexer) OpenGroup() (int, bool) {
	idx := l.skipSpaceFrom(l.pos)
	if idx >= len(l.src) || l.src[idx] != '{' {
		return idx, false
	}
	l.pos = idx + 1
	return idx, true
}

// RawGroup reads a balanced {..} argument verbatim. It returns false
// without consuming input when the next non-space byte is not "{".
func (l *Lexer) RawGroup() (string, bool, error) {
	idx := l.skipSpaceFrom(l.pos)
	if idx >= len(l.src) || l.src[idx] != '{' {
		return "", false, nil
	}

	depth := 0
	for end := idx + 1; end < len(l.src); end++ {
		switch l.src[end] {
		case '\\':
			end++
		case '{':
			depth++
		case '}':
			if depth == 0 {
				l.pos = end + 1
				return string(l.src[idx+1 : end]), true, nil
			}
			depth--
		}
	}
	return "", false, translate.Malformed(l.doc, idx, "{", "unterminated argument")
}

// OptionalArg reads a [..] argument if one follows. Braces inside the
// argument may contain "]".
func (l *Lexer) OptionalArg() (string, bool, error) {
	idx := l.skipSpaceFrom(l.pos)
	if idx >= len(l.src) || l.src[idx] != '[' {
		return "", false, nil
	}

	depth := 0
	for end := idx + 1; end < len(l.src); end++ {
		switch l.src[end] {
		case '\\':
			end++
		case '{':
			depth++
		case '}':
			depth--
		case ']':
			if depth == 0 {
				l.pos = end + 1
				return string(l.src[idx+1 : end]), true, nil
			}
		}
	}
	return "", false, translate.Malformed(l.doc, idx, "[", "unterminated optional argument")
}

// RawUntilEnd reads everything up to \end{name} and consumes the end
// marker. It also returns the byte offset where the body starts.
func (l *Lexer) RawUntilEnd(name string) (string, int, bool) {
	marker := []byte(`\end{` + name + `}`)
	start := l.pos
	idx := bytes.Index(l.src[start:], marker)
	if idx < 0 {
		return "", start, false
	}
	body := string(l.src[start : start+idx])
	l.pos += idx + len(marker)
	return body, start, true
}

// SkipSpacingArg drops a [..] length directly after \\, as in \\[2mm].
func (l *Lexer) SkipSpacingArg() {
	if l.pos >= len(l.src) || l.src[l.pos] != '[' {
		return
	}
	rest := l.src[l.pos:]
	end := bytes.IndexByte(rest, ']')
	newline := bytes.IndexByte(rest, '\n')
	if end > 0 && (newline < 0 || newline > end) {
		l.pos += end + 1
	}
}
