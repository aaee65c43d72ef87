package export

import (
	"fmt"
	"strings"

	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
)

// Summary renders a short plain-text digest of a breakdown, one line
// per phase.
func Summary(b *domain.Breakdown) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Project: %s\n", b.ProjectName)
	fmt.Fprintf(&sb, "Total Duration: %d %s\n", b.TotalDurationUnits, b.DurationUnitLabel)
	fmt.Fprintf(&sb, "Number of Phases: %d\n\n", len(b.Phases))
	sb.WriteString("Phase Breakdown:\n")
	for _, p := range b.Phases {
		fmt.Fprintf(&sb, "- %s: %d %s (%.1f%%)\n", p.Name, p.DurationUnits, b.DurationUnitLabel, p.Percentage)
	}
	return sb.String()
}

// GanttRow is one bar of a Gantt-style chart: phase start and finish
// offsets in the breakdown's duration unit.
type GanttRow struct {
	Task     string `json:"task"`
	Start    int    `json:"start"`
	Finish   int    `json:"finish"`
	Duration int    `json:"duration"`
	Team     string `json:"team,omitempty"`
}

// GanttRows flattens phases into consecutive non-overlapping spans for
// chart layers. Spans tile [0, TotalDurationUnits) exactly because
// durations sum to the total.
func GanttRows(b *domain.Breakdown) []GanttRow {
	rows := make([]GanttRow, len(b.Phases))
	start := 0
	for i, p := range b.Phases {
		rows[i] = GanttRow{
			Task:     p.Name,
			Start:    start,
			Finish:   start + p.DurationUnits,
			Duration: p.DurationUnits,
			Team:     p.TeamFocus,
		}
		start += p.DurationUnits
	}
	return rows
}
