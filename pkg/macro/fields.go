package macro

import (
	"strings"
	"unicode"
)

// field is one whitespace-separated argument with its byte offset.
type field struct {
	text   string
	offset int
}

// splitFields splits an argument list on whitespace. Parentheses,
// brackets and double-quoted strings are kept intact, so "(1, 2)" and
// "\"two words\"" are single fields.
func splitFields(line string, base int) ([]field, bool) {
	var (
		fields []field
		depth  int
		quoted bool
		start  = -1
	)

	flush := func(end int) {
		if start >= 0 {
			fields = append(fields, field{text: line[start:end], offset: base + start})
			start = -1
		}
	}

	for idx, r := range line {
		switch {
		case quoted:
			if r == '"' && (idx == 0 || line[idx-1] != '\\') {
				quoted = false
			}
		case r == '"':
			if start < 0 {
				start = idx
			}
			quoted = true
		case r == '(' || r == '[':
			if start < 0 {
				start = idx
			}
			depth++
		case r == ')' || r == ']':
			depth--
		case unicode.IsSpace(r) && depth <= 0:
			flush(idx)
			continue
		default:
			if start < 0 {
				start = idx
			}
		}
	}
	flush(len(line))

	return fields, !quoted && depth == 0
}

func joinFields(fields []field) string {
	parts := make([]string, len(fields))
	for idx, f := range fields {
		parts[idx] = f.text
	}
	return strings.Join(parts, " ")
}

func texts(fields []field) []string {
	out := make([]string, len(fields))
	for idx, f := range fields {
		out[idx] = f.text
	}
	return out
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for idx, r := range s {
		if r == '_' || unicode.IsLetter(r) || (idx > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

// isPairLiteral reports whether s looks like "(x, y)".
func isPairLiteral(s string) bool {
	return strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && strings.Contains(s, ",")
}
