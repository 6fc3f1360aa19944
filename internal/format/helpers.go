package format

import (
	"fmt"
	"strings"

	"debrief/internal/brief"
)

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// BriefSummary renders the headline view of a validated brief for
// terminal output: decision line, confidence, then the risk table.
func BriefSummary(b *brief.Brief, mode Mode) string {
	var sb strings.Builder

	sb.WriteString("BOTTOM LINE: " + b.BottomLine + "\n")
	if b.ConfidenceLevel != nil {
		sb.WriteString(fmt.Sprintf("CONFIDENCE:  %.0f/100\n", *b.ConfidenceLevel))
	}
	sb.WriteString("\n")

	tbl := NewTable(mode)
	tbl.Header("Risk", "Impact", "Probability", "Mitigation")
	tbl.Columns(
		ColumnConfig{Number: 1, MaxWidth: 40},
		ColumnConfig{Number: 2, Center: true},
		ColumnConfig{Number: 3, Center: true},
		ColumnConfig{Number: 4, MaxWidth: 40},
	)
	for _, r := range b.CriticalRisks {
		tbl.Row(
			Truncate(r.Description, 40),
			fmt.Sprintf("%d/5", r.Impact),
			fmt.Sprintf("%d/5", r.Probability),
			Truncate(r.Mitigation, 40),
		)
	}
	sb.WriteString(tbl.String())
	sb.WriteString("\n\nIMMEDIATE ACTIONS:\n")
	for i, a := range b.ImmediateActions {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, a))
	}
	return sb.String()
}

// ViolationTable renders a validation failure's violation list.
func ViolationTable(violations []string, mode Mode) string {
	tbl := NewTable(mode)
	tbl.Header("#", "Violation")
	tbl.Columns(ColumnConfig{Number: 2, MaxWidth: 76})
	for i, v := range violations {
		tbl.Row(i+1, v)
	}
	return tbl.String()
}
