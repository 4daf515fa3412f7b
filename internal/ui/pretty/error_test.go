package pretty_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/markconv/internal/ui/pretty"
	"github.com/yaklabco/markconv/pkg/source"
	"github.com/yaklabco/markconv/pkg/translate"
)

func TestFormatError_Malformed(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	doc := source.FromString("doc.tex", "a $b\n")
	err := translate.Malformed(doc, 2, "$", "unterminated inline math")

	want := "  doc.tex:1:3  error  unterminated inline math  ($)\n" +
		"        a $b\n" +
		"          ^\n"
	assert.Equal(t, want, styles.FormatError(err, doc))
}

func TestFormatError_WithoutDocument(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	doc := source.FromString("fig.mac", "x\nbegin pen\n")
	err := translate.Malformed(doc, 2, "begin pen", "block is never closed")

	assert.Equal(t, "  fig.mac:2:1  error  block is never closed  (begin pen)\n", styles.FormatError(err, nil))
}

func TestFormatError_Unsupported(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	doc := source.FromString("", "\\tableofcontents")
	err := translate.Unsupported(doc, 0, "\\tableofcontents")

	result := styles.FormatError(err, doc)
	assert.Contains(t, result, "<stdin>:1:1")
	assert.Contains(t, result, "unsupported")
	assert.Contains(t, result, "(\\tableofcontents)")
}

func TestFormatError_Wrapped(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	doc := source.FromString("doc.tex", "}")
	err := errors.Join(errors.New("latex2bbcode"), translate.Malformed(doc, 0, "}", "unmatched closing brace"))

	assert.Contains(t, styles.FormatError(err, doc), "doc.tex:1:1  error  unmatched closing brace  (})")
}

func TestFormatError_Plain(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "error  boom\n", styles.FormatError(errors.New("boom"), nil))
}

func TestFormatSourceContext_Tabs(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	result := styles.FormatSourceContext("\tdot(A);", 2)

	assert.Equal(t, "            dot(A);\n            ^\n", result)
}

func TestFormatWarning(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "warning  no lsf found\n", styles.FormatWarning("no lsf found"))
}
