package pretty

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/markconv/pkg/source"
	"github.com/yaklabco/markconv/pkg/translate"
)

// FormatError formats a translation failure for terminal output.
// Errors that carry a position are rendered as
//
//	path:line:col  error  message  (construct)
//
// followed by the offending source line and a caret when doc is non-nil.
func (s *Styles) FormatError(err error, doc *source.Document) string {
	var located translate.Located
	if !errors.As(err, &located) {
		return fmt.Sprintf("%s  %s\n", s.Error.Render("error"), s.Message.Render(err.Error()))
	}

	pos := located.Pos()

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("  %s  %s  %s",
		s.formatLocation(pos),
		s.Error.Render(kindOf(err)),
		s.Message.Render(messageOf(err)),
	))
	if construct := located.ConstructName(); construct != "" {
		builder.WriteString("  " + s.Construct.Render("("+construct+")"))
	}
	builder.WriteString("\n")

	if doc != nil && pos.Line > 0 {
		if line := doc.Line(pos.Line); line != nil {
			builder.WriteString(s.FormatSourceContext(string(line), pos.Column))
		}
	}

	return builder.String()
}

func (s *Styles) formatLocation(pos translate.Position) string {
	path := pos.Path
	if path == "" {
		path = "<stdin>"
	}
	if pos.Line <= 0 {
		return s.FilePath.Render(path)
	}
	return s.FilePath.Render(path) + s.Location.Render(fmt.Sprintf(":%d:%d", pos.Line, max(pos.Column, 1)))
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(expandTabs(line)) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", caretOffset(line, column))
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatWarning formats a non-fatal notice such as an unsupported construct
// passed through in lenient mode.
func (s *Styles) FormatWarning(message string) string {
	return fmt.Sprintf("%s  %s\n", s.Warning.Render("warning"), s.Message.Render(message))
}

func kindOf(err error) string {
	if errors.Is(err, translate.ErrUnsupportedConstruct) {
		return "unsupported"
	}
	return "error"
}

func messageOf(err error) string {
	var malformed *translate.MalformedInputError
	if errors.As(err, &malformed) {
		return malformed.Message
	}
	var unsupported *translate.UnsupportedConstructError
	if errors.As(err, &unsupported) {
		return "no equivalent in the target dialect"
	}
	return err.Error()
}

const tabWidth = 4

func expandTabs(line string) string {
	return strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
}

// caretOffset converts a 1-based rune column into a display offset.
func caretOffset(line string, column int) int {
	offset := 0
	col := 1
	for _, r := range line {
		if col >= column {
			break
		}
		if r == '\t' {
			offset += tabWidth
		} else {
			offset++
		}
		col++
	}
	return offset + max(0, column-col)
}
