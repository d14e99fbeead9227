package apt

import (
	"fmt"
	"strings"

	"aptls/internal/model"
)

// Report renders the session's table and statistics as plain text for the
// --report CLI mode. Rows follow the schema's default sort key.
func Report(s *Session) string {
	var b strings.Builder

	ctx := s.Context()
	fmt.Fprintf(&b, "aptls report (version %s)\n", model.Version)
	fmt.Fprintf(&b, "Command: %s\n", ctx.Command)
	if ctx.Target != "" {
		fmt.Fprintf(&b, "Target:  %s\n", ctx.Target)
	}
	b.WriteString("\n")

	schema := s.Schema()
	for _, col := range schema.Columns {
		fmt.Fprintf(&b, "%-*s  ", col.Width, col.Title)
	}
	b.WriteString("\n")
	for _, col := range schema.Columns {
		fmt.Fprintf(&b, "%s  ", strings.Repeat("-", col.Width))
	}
	b.WriteString("\n")

	for _, rec := range s.Sorted(schema.Sort) {
		for _, col := range schema.Columns {
			fmt.Fprintf(&b, "%-*s  ", col.Width, clip(fieldAt(rec, col.Index), col.Width))
		}
		b.WriteString("\n")
	}

	stats := s.Stats()
	fmt.Fprintf(&b, "\n%d packages\n", len(s.Table()))
	fmt.Fprintf(&b, "Installed: %d  Upgradable: %d  Residual: %d  Auto-installed: %d\n",
		stats.Installed, stats.Upgradable, stats.Residual, stats.AutoInstalled)
	return b.String()
}

func clip(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
