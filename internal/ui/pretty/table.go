package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/markconv/pkg/translate"
)

// Table formatting constants.
const (
	tablePadding        = 2
	minDialectWidth     = 10
	minCommandWidth     = 8
	minDescriptionWidth = 20
	heavySeparator      = "="
	defaultTermWidth    = 100
)

// TableFormatter formats registry listings as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

type columnWidths struct {
	dialect     int
	command     int
	description int
}

// FormatDialects formats translator registrations as a table with one row
// per dialect pair.
func (t *TableFormatter) FormatDialects(regs []translate.Registration) string {
	if len(regs) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(regs)

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(fmt.Sprintf(" %-*s  %-*s  %s",
		widths.dialect, "DIALECT",
		widths.command, "COMMAND",
		"DESCRIPTION",
	)))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, reg := range regs {
		builder.WriteString(fmt.Sprintf(" %-*s  %-*s  %s",
			widths.dialect, string(reg.Dialect),
			widths.command, reg.Command,
			truncateString(reg.Description, widths.description),
		))
		builder.WriteString("\n")
	}

	return builder.String()
}

func (t *TableFormatter) calculateColumnWidths(regs []translate.Registration) columnWidths {
	widths := columnWidths{
		dialect:     minDialectWidth,
		command:     minCommandWidth,
		description: minDescriptionWidth,
	}

	for _, reg := range regs {
		widths.dialect = max(widths.dialect, len(reg.Dialect))
		widths.command = max(widths.command, len(reg.Command))
		widths.description = max(widths.description, len(reg.Description))
	}

	if total := t.totalWidth(widths); total > t.termWidth {
		widths.description = max(minDescriptionWidth, widths.description-(total-t.termWidth))
	}

	return widths
}

func (t *TableFormatter) totalWidth(widths columnWidths) int {
	return 1 + widths.dialect + widths.command + widths.description + tablePadding*2
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.totalWidth(widths)))
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
