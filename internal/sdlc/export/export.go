// Package export renders a canonical breakdown to interchange formats
// and parses its own JSON form back. Pure functions, no side effects.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
)

// Format selects the output rendering of Serialize.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// ParseFormat maps user-facing format names (query params, CLI flags)
// to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// listDelimiter joins deliverables/activities cells in CSV output.
// Occurrences inside an item are escaped so the cell stays splittable.
const listDelimiter = ";"

// envelope wraps the breakdown for JSON export, mirroring the shape
// the download feature historically produced.
type envelope struct {
	GeneratedAt   string           `json:"generated_at"`
	SDLCBreakdown domain.Breakdown `json:"sdlc_breakdown"`
}

// Serialize renders b in the requested format.
func Serialize(b *domain.Breakdown, format Format) (string, error) {
	if b == nil {
		return "", fmt.Errorf("nil breakdown")
	}
	switch format {
	case FormatJSON:
		return toJSON(b)
	case FormatCSV:
		return toCSV(b)
	case FormatMarkdown:
		return toMarkdown(b), nil
	}
	return "", fmt.Errorf("unsupported export format %q", format)
}

// DeserializeJSON is the inverse of Serialize(b, FormatJSON). It also
// accepts a bare Breakdown object without the envelope, so stored
// history rows load through the same path.
func DeserializeJSON(text string) (*domain.Breakdown, error) {
	var env envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return nil, fmt.Errorf("parse breakdown JSON: %w", err)
	}
	b := env.SDLCBreakdown
	if len(b.Phases) == 0 {
		var bare domain.Breakdown
		if err := json.Unmarshal([]byte(text), &bare); err != nil {
			return nil, fmt.Errorf("parse breakdown JSON: %w", err)
		}
		b = bare
	}
	if len(b.Phases) == 0 {
		return nil, fmt.Errorf("breakdown JSON has no phases")
	}
	for i := range b.Phases {
		if b.Phases[i].Deliverables == nil {
			b.Phases[i].Deliverables = []string{}
		}
		if b.Phases[i].Activities == nil {
			b.Phases[i].Activities = []string{}
		}
	}
	return &b, nil
}

func toJSON(b *domain.Breakdown) (string, error) {
	out, err := json.MarshalIndent(envelope{
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		SDLCBreakdown: *b,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal breakdown: %w", err)
	}
	return string(out), nil
}

func toCSV(b *domain.Breakdown) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"order", "name", "duration_units", "percentage", "deliverables", "activities", "description", "team_focus"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}

	for _, p := range b.Phases {
		row := []string{
			strconv.Itoa(p.Order),
			p.Name,
			strconv.Itoa(p.DurationUnits),
			strconv.FormatFloat(p.Percentage, 'f', 1, 64),
			joinList(p.Deliverables),
			joinList(p.Activities),
			p.Description,
			p.TeamFocus,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return buf.String(), nil
}

// joinList flattens a list field to one CSV cell, escaping the
// delimiter inside items.
func joinList(items []string) string {
	escaped := make([]string, len(items))
	for i, item := range items {
		escaped[i] = strings.ReplaceAll(item, listDelimiter, `\`+listDelimiter)
	}
	return strings.Join(escaped, listDelimiter)
}

// SplitList undoes joinList.
func SplitList(cell string) []string {
	if cell == "" {
		return []string{}
	}
	var items []string
	var current strings.Builder
	escaped := false
	for _, r := range cell {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case string(r) == listDelimiter:
			items = append(items, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	items = append(items, current.String())
	return items
}

func toMarkdown(b *domain.Breakdown) string {
	var md strings.Builder

	fmt.Fprintf(&md, "# SDLC Breakdown: %s\n\n", b.ProjectName)
	fmt.Fprintf(&md, "**Total Duration:** %d %s\n", b.TotalDurationUnits, b.DurationUnitLabel)
	fmt.Fprintf(&md, "**Methodology:** %s\n", b.Methodology)
	fmt.Fprintf(&md, "**Source:** %s\n\n", b.Source)

	md.WriteString("## Phase Overview\n\n")
	fmt.Fprintf(&md, "| Phase | Duration | Percentage |\n")
	fmt.Fprintf(&md, "|-------|----------|------------|\n")
	for _, p := range b.Phases {
		fmt.Fprintf(&md, "| %s | %d %s | %.1f%% |\n", p.Name, p.DurationUnits, b.DurationUnitLabel, p.Percentage)
	}
	md.WriteString("\n## Detailed Phase Breakdown\n\n")

	for _, p := range b.Phases {
		fmt.Fprintf(&md, "### Phase %d: %s\n\n", p.Order+1, p.Name)
		fmt.Fprintf(&md, "**Duration:** %d %s (%.1f%%)\n\n", p.DurationUnits, b.DurationUnitLabel, p.Percentage)
		if p.Description != "" {
			fmt.Fprintf(&md, "**Description:** %s\n\n", p.Description)
		}
		if len(p.Deliverables) > 0 {
			md.WriteString("**Key Deliverables:**\n")
			for _, d := range p.Deliverables {
				fmt.Fprintf(&md, "- %s\n", d)
			}
			md.WriteString("\n")
		}
		if len(p.Activities) > 0 {
			md.WriteString("**Main Activities:**\n")
			for _, a := range p.Activities {
				fmt.Fprintf(&md, "- %s\n", a)
			}
			md.WriteString("\n")
		}
		if p.TeamFocus != "" {
			fmt.Fprintf(&md, "**Team Focus:** %s\n\n", p.TeamFocus)
		}
	}
	return md.String()
}
