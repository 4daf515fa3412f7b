// Package source holds an input document and its line index.
// Translators use it to map byte offsets back to 1-based line and column
// numbers when reporting malformed input.
package source

import (
	"sort"
	"unicode/utf8"
)

// LineInfo contains the byte boundaries of a single line.
type LineInfo struct {
	// StartOffset is the byte index of the first character of the line.
	StartOffset int

	// NewlineStart is the byte index where the line terminator begins.
	// Equal to EndOffset for a final line without terminator.
	NewlineStart int

	// EndOffset is the byte index just past the line terminator.
	EndOffset int
}

// Document is an immutable input text plus its line index.
type Document struct {
	// Path is the file the content was read from, or "<stdin>".
	Path string

	// Content is the raw input. Callers must not modify it.
	Content []byte

	// Lines is the line index built from Content.
	Lines []LineInfo
}

// NewDocument builds a Document from content. The content is copied.
func NewDocument(path string, content []byte) *Document {
	buf := make([]byte, len(content))
	copy(buf, content)
	return &Document{
		Path:    path,
		Content: buf,
		Lines:   BuildLines(buf),
	}
}

// FromString is a convenience wrapper used mostly by tests.
func FromString(path, content string) *Document {
	return NewDocument(path, []byte(content))
}

// String returns the content as a string.
func (d *Document) String() string {
	return string(d.Content)
}

// BuildLines constructs line metadata from content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	if lineStart <= len(content) {
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return lines
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// Position converts a byte offset to 1-based line and column numbers.
// Columns count runes so that carets line up under UTF-8 text.
// Returns (0, 0) if the offset is out of range.
func (d *Document) Position(offset int) (int, int) {
	if offset < 0 || len(d.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(d.Content) {
		last := d.Lines[len(d.Lines)-1]
		return len(d.Lines), utf8.RuneCount(d.Content[last.StartOffset:]) + 1
	}

	lineIdx := sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(d.Lines) {
		lineIdx = len(d.Lines) - 1
	}

	info := d.Lines[lineIdx]
	if offset < info.StartOffset {
		return 0, 0
	}

	return lineIdx + 1, utf8.RuneCount(d.Content[info.StartOffset:offset]) + 1
}

// Line returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (d *Document) Line(line int) []byte {
	if line < 1 || line > len(d.Lines) {
		return nil
	}
	info := d.Lines[line-1]
	return d.Content[info.StartOffset:info.NewlineStart]
}

// LineStart returns the byte offset of the start of a 1-based line.
func (d *Document) LineStart(line int) (int, bool) {
	if line < 1 || line > len(d.Lines) {
		return 0, false
	}
	return d.Lines[line-1].StartOffset, true
}
