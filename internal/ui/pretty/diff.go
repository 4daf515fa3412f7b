package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/markconv/pkg/diff"
)

// FormatDiff renders a unified diff with colored markers.
// It returns an empty string when d has no changes.
func (s *Styles) FormatDiff(d *diff.Unified) string {
	if !d.HasChanges() {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(s.DiffHeader.Render("--- "+d.OldName) + "\n")
	builder.WriteString(s.DiffHeader.Render("+++ "+d.NewName) + "\n")

	for _, hunk := range d.Hunks {
		builder.WriteString(s.DiffHunk.Render(hunk.Header()) + "\n")
		for _, line := range hunk.Lines {
			builder.WriteString(s.diffLineStyle(line.Kind).Render(line.Prefix()+line.Content) + "\n")
		}
	}

	return builder.String()
}

func (s *Styles) diffLineStyle(kind diff.Kind) lipgloss.Style {
	switch kind {
	case diff.Added:
		return s.DiffAdd
	case diff.Removed:
		return s.DiffRemove
	default:
		return s.DiffContext
	}
}
