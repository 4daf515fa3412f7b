package translate

import (
	"errors"
	"fmt"

	"github.com/yaklabco/markconv/pkg/source"
)

// Sentinel errors for categorization via errors.Is.
var (
	// ErrMalformedInput marks unbalanced or unterminated constructs.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnsupportedConstruct marks constructs outside the translator's grammar in strict mode.
	ErrUnsupportedConstruct = errors.New("unsupported construct")

	// ErrFileNotFound marks a missing or unreadable input path.
	ErrFileNotFound = errors.New("file not found")

	// ErrUnknownDialect is returned for dialect pairs with no registered translator.
	ErrUnknownDialect = errors.New("unknown dialect")
)

// Position locates an error in the input.
type Position struct {
	Path   string
	Line   int
	Column int
}

// String renders path:line:col, omitting unknown parts.
func (p Position) String() string {
	switch {
	case p.Line > 0 && p.Column > 0:
		return fmt.Sprintf("%s:%d:%d", p.Path, p.Line, p.Column)
	case p.Line > 0:
		return fmt.Sprintf("%s:%d", p.Path, p.Line)
	default:
		return p.Path
	}
}

// PositionAt resolves a byte offset in doc.
func PositionAt(doc *source.Document, offset int) Position {
	line, col := doc.Position(offset)
	return Position{Path: doc.Path, Line: line, Column: col}
}

// MalformedInputError reports an unbalanced or unterminated construct.
type MalformedInputError struct {
	Position

	// Construct names the offending construct (e.g. "$", "\\begin{itemize}", "}").
	Construct string

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Position, ErrMalformedInput, e.Message)
}

// Is reports whether target is ErrMalformedInput.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// Malformed builds a MalformedInputError at offset in doc.
func Malformed(doc *source.Document, offset int, construct, format string, args ...any) *MalformedInputError {
	return &MalformedInputError{
		Position:  PositionAt(doc, offset),
		Construct: construct,
		Message:   fmt.Sprintf(format, args...),
	}
}

// UnsupportedConstructError reports a recognized construct with no
// target-dialect equivalent. It is only returned in strict mode.
type UnsupportedConstructError struct {
	Position

	Construct string
}

// Error implements the error interface.
func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("%s: %s: %s has no equivalent in the target dialect",
		e.Position, ErrUnsupportedConstruct, e.Construct)
}

// Is reports whether target is ErrUnsupportedConstruct.
func (e *UnsupportedConstructError) Is(target error) bool {
	return target == ErrUnsupportedConstruct
}

// Unsupported builds an UnsupportedConstructError at offset in doc.
func Unsupported(doc *source.Document, offset int, construct string) *UnsupportedConstructError {
	return &UnsupportedConstructError{
		Position:  PositionAt(doc, offset),
		Construct: construct,
	}
}

// Located is implemented by errors that carry an input position.
type Located interface {
	error
	Pos() Position
	ConstructName() string
}

// Pos implements Located.
func (e *MalformedInputError) Pos() Position { return e.Position }

// ConstructName implements Located.
func (e *MalformedInputError) ConstructName() string { return e.Construct }

// Pos implements Located.
func (e *UnsupportedConstructError) Pos() Position { return e.Position }

// ConstructName implements Located.
func (e *UnsupportedConstructError) ConstructName() string { return e.Construct }
