package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/markconv/pkg/diff"
)

// FormatDiffSummary formats diff statistics as a single line.
// Example: "3 additions, 1 deletion".
func (s *Styles) FormatDiffSummary(d *diff.Unified) string {
	if !d.HasChanges() {
		return s.Success.Render("No changes") + "\n"
	}

	parts := []string{
		s.DiffAdd.Render(plural(d.Additions, "addition", "additions")),
		s.DiffRemove.Render(plural(d.Deletions, "deletion", "deletions")),
	}
	return strings.Join(parts, ", ") + "\n"
}

// FormatWriteSummary reports the outcome of writing output to path.
func (s *Styles) FormatWriteSummary(path string, size int, changed bool) string {
	if !changed {
		return s.FilePath.Render(path) + s.Dim.Render(" unchanged") + "\n"
	}
	return s.Success.Render("Wrote ") + s.FilePath.Render(path) +
		s.Dim.Render(fmt.Sprintf(" (%s)", plural(size, "byte", "bytes"))) + "\n"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
