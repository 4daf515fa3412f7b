package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/markconv/pkg/source"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []source.LineInfo
	}{
		{
			name:     "empty content",
			content:  "",
			expected: []source.LineInfo{},
		},
		{
			name:    "single line no newline",
			content: "hello",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 5},
			},
		},
		{
			name:    "single line with CRLF",
			content: "hello\r\n",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 7},
				{StartOffset: 7, NewlineStart: 7, EndOffset: 7},
			},
		},
		{
			name:    "multiple lines LF",
			content: "line1\nline2\nline3",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 11, EndOffset: 12},
				{StartOffset: 12, NewlineStart: 17, EndOffset: 17},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, source.BuildLines([]byte(tt.content)))
		})
	}
}

func TestDocumentPosition(t *testing.T) {
	t.Parallel()

	doc := source.FromString("a.tex", "ab\ncdé\nf")

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3},
		{3, 2, 1},
		{5, 2, 3},
		{8, 3, 1},
		{9, 3, 2},
		{-1, 0, 0},
	}

	for _, tt := range tests {
		line, col := doc.Position(tt.offset)
		assert.Equal(t, tt.wantLine, line, "line for offset %d", tt.offset)
		assert.Equal(t, tt.wantCol, col, "column for offset %d", tt.offset)
	}
}

func TestDocumentLine(t *testing.T) {
	t.Parallel()

	doc := source.FromString("a.tex", "first\r\nsecond\n")

	assert.Equal(t, "first", string(doc.Line(1)))
	assert.Equal(t, "second", string(doc.Line(2)))
	assert.Empty(t, doc.Line(3))
	assert.Nil(t, doc.Line(4))
	assert.Equal(t, 3, doc.LineCount())
}

func TestNewDocumentCopiesContent(t *testing.T) {
	t.Parallel()

	buf := []byte("abc")
	doc := source.NewDocument("x", buf)
	buf[0] = 'z'

	assert.Equal(t, "abc", doc.String())
}
