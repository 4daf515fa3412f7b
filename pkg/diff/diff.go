// Package diff renders line-based unified diffs between a translator's
// input and output.
package diff

import (
	"fmt"
	"strings"
)

// Kind classifies a diff line.
type Kind int

const (
	// Context is an unchanged line.
	Context Kind = iota

	// Added is a line present only in the new text.
	Added

	// Removed is a line present only in the old text.
	Removed
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// Line is one line of a hunk, without its prefix character.
type Line struct {
	Kind    Kind
	Content string
}

// Hunk is a contiguous group of changes with surrounding context.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// Unified is a unified diff between two texts.
type Unified struct {
	OldName string
	NewName string
	Hunks   []Hunk

	Additions int
	Deletions int
}

// Compute diffs oldText against newText. It returns nil when the texts
// are line-for-line identical.
func Compute(oldName, newName string, oldText, newText []byte) *Unified {
	oldLines := splitLines(oldText)
	newLines := splitLines(newText)

	ops := operations(oldLines, newLines)
	hunks := group(ops)
	if len(hunks) == 0 {
		return nil
	}

	result := &Unified{OldName: oldName, NewName: newName, Hunks: hunks}
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case Added:
				result.Additions++
			case Removed:
				result.Deletions++
			case Context:
			}
		}
	}
	return result
}

// HasChanges reports whether the diff contains any hunks.
func (u *Unified) HasChanges() bool {
	return u != nil && len(u.Hunks) > 0
}

// String renders the diff in unified format.
func (u *Unified) String() string {
	if !u.HasChanges() {
		return ""
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- %s\n", u.OldName)
	fmt.Fprintf(&builder, "+++ %s\n", u.NewName)

	for _, hunk := range u.Hunks {
		builder.WriteString(hunk.Header())
		builder.WriteByte('\n')
		for _, line := range hunk.Lines {
			builder.WriteString(line.Prefix())
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}

// Header returns the "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

// Prefix returns the unified-diff marker for the line.
func (l Line) Prefix() string {
	switch l.Kind {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return " "
	}
}

// splitLines splits content into lines, dropping the final newline.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// operations produces the edit script. Common leading and trailing lines
// are matched directly so the quadratic LCS only covers the changed middle.
func operations(oldLines, newLines []string) []Line {
	prefix := 0
	for prefix < len(oldLines) && prefix < len(newLines) && oldLines[prefix] == newLines[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(oldLines)-prefix && suffix < len(newLines)-prefix &&
		oldLines[len(oldLines)-1-suffix] == newLines[len(newLines)-1-suffix] {
		suffix++
	}

	ops := make([]Line, 0, len(oldLines)+len(newLines))
	for _, line := range oldLines[:prefix] {
		ops = append(ops, Line{Kind: Context, Content: line})
	}
	ops = append(ops, lcsOperations(
		oldLines[prefix:len(oldLines)-suffix],
		newLines[prefix:len(newLines)-suffix],
	)...)
	for _, line := range oldLines[len(oldLines)-suffix:] {
		ops = append(ops, Line{Kind: Context, Content: line})
	}
	return ops
}

// lcsOperations walks a longest-common-subsequence table to emit
// removals before additions within each changed run.
func lcsOperations(oldLines, newLines []string) []Line {
	rows, cols := len(oldLines), len(newLines)

	table := make([][]int, rows+1)
	for idx := range table {
		table[idx] = make([]int, cols+1)
	}
	for row := rows - 1; row >= 0; row-- {
		for col := cols - 1; col >= 0; col-- {
			if oldLines[row] == newLines[col] {
				table[row][col] = table[row+1][col+1] + 1
			} else {
				table[row][col] = max(table[row+1][col], table[row][col+1])
			}
		}
	}

	ops := make([]Line, 0, rows+cols)
	row, col := 0, 0
	for row < rows || col < cols {
		switch {
		case row < rows && col < cols && oldLines[row] == newLines[col]:
			ops = append(ops, Line{Kind: Context, Content: oldLines[row]})
			row++
			col++
		case col >= cols || (row < rows && table[row+1][col] >= table[row][col+1]):
			ops = append(ops, Line{Kind: Removed, Content: oldLines[row]})
			row++
		default:
			ops = append(ops, Line{Kind: Added, Content: newLines[col]})
			col++
		}
	}
	return ops
}

// group splits the edit script into hunks, merging changes separated by
// no more than twice the context size.
func group(ops []Line) []Hunk {
	type span struct{ start, end int }

	var changes []span
	for idx := 0; idx < len(ops); {
		if ops[idx].Kind == Context {
			idx++
			continue
		}
		start := idx
		for idx < len(ops) && ops[idx].Kind != Context {
			idx++
		}
		changes = append(changes, span{start, idx})
	}

	var hunks []Hunk
	for idx := 0; idx < len(changes); {
		last := idx
		for last+1 < len(changes) && changes[last+1].start-changes[last].end <= 2*contextLines {
			last++
		}
		hunks = append(hunks, buildHunk(ops, changes[idx].start, changes[last].end))
		idx = last + 1
	}
	return hunks
}

func buildHunk(ops []Line, changeStart, changeEnd int) Hunk {
	start := max(changeStart-contextLines, 0)
	end := min(changeEnd+contextLines, len(ops))

	hunk := Hunk{OldStart: 1, NewStart: 1}
	for _, op := range ops[:start] {
		if op.Kind != Added {
			hunk.OldStart++
		}
		if op.Kind != Removed {
			hunk.NewStart++
		}
	}

	hunk.Lines = append(hunk.Lines, ops[start:end]...)
	for _, op := range hunk.Lines {
		switch op.Kind {
		case Context:
			hunk.OldCount++
			hunk.NewCount++
		case Removed:
			hunk.OldCount++
		case Added:
			hunk.NewCount++
		}
	}

	// An empty side starts at the line before the hunk, as in GNU diff.
	if hunk.OldCount == 0 {
		hunk.OldStart--
	}
	if hunk.NewCount == 0 {
		hunk.NewStart--
	}
	return hunk
}
