package latex

// Kind identifies the type of a lexical token.
type Kind int

const (
	// KindEOF marks the end of input.
	KindEOF Kind = iota

	// KindText is a run of ordinary characters.
	KindText

	// KindCommand is a control word (\textbf) or control symbol (\,).
	// Value holds the name without the backslash.
	KindCommand

	// KindSymbol is an active character or escape: ~, \\, \%, \$, \&, \#, \_, \{, \}.
	// Value holds the symbol as written without the backslash, except for "\\".
	KindSymbol

	// KindGroupOpen is "{".
	KindGroupOpen

	// KindGroupClose is "}".
	KindGroupClose

	// KindMath is a complete math span. Value holds the body.
	KindMath

	// KindComment is "%" to end of line. Value holds the text after "%".
	KindComment

	// KindBegin is \begin{name}.
	KindBegin

	// KindEnd is \end{name}.
	KindEnd

	// KindVerb is \verb|...|. Value holds the body.
	KindVerb
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "eof"
	case KindText:
		return "text"
	case KindCommand:
		return "command"
	case KindSymbol:
		return "symbol"
	case KindGroupOpen:
		return "group-open"
	case KindGroupClose:
		return "group-close"
	case KindMath:
		return "math"
	case KindComment:
		return "comment"
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindVerb:
		return "verb"
	default:
		return "unknown"
	}
}

// Token is a lexical unit with its byte range in the source.
type Token struct {
	Kind  Kind
	Value string

	// Star is set for starred commands such as \section*.
	Star bool

	// Display is set for $$..$$ and \[..\] math.
	Display bool

	// Delim is the opening delimiter of a math span ("$", "$$", "\(", "\[").
	Delim string

	// Offset is the byte index of the first character (inclusive).
	Offset int

	// End is the byte index past the last character (exclusive).
	End int
}
