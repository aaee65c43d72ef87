package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
)

func sampleBreakdown() *domain.Breakdown {
	return &domain.Breakdown{
		ProjectName:        "Task Tracker",
		TotalDurationUnits: 10,
		DurationUnitLabel:  "weeks",
		Methodology:        domain.MethodologyAgile,
		Source:             domain.SourceAIGenerated,
		Phases: []domain.Phase{
			{
				Name:          "Design",
				Order:         0,
				DurationUnits: 4,
				Percentage:    40,
				Description:   "Architecture and UI design",
				Deliverables:  []string{"Mockups", "Architecture doc"},
				Activities:    []string{"Design reviews"},
				TeamFocus:     "Designers",
			},
			{
				Name:          "Build",
				Order:         1,
				DurationUnits: 6,
				Percentage:    60,
				Deliverables:  []string{},
				Activities:    []string{"Coding", "Code review"},
			},
		},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	t.Run("deserialize inverts serialize", func(t *testing.T) {
		b := sampleBreakdown()
		text, err := Serialize(b, FormatJSON)
		require.NoError(t, err)

		got, err := DeserializeJSON(text)
		require.NoError(t, err)
		assert.Equal(t, b, got)
	})

	t.Run("uneven percentages survive the round trip", func(t *testing.T) {
		b := sampleBreakdown()
		b.Phases[0].Percentage = 100.0 / 3.0
		b.Phases[1].Percentage = 200.0 / 3.0

		text, err := Serialize(b, FormatJSON)
		require.NoError(t, err)
		got, err := DeserializeJSON(text)
		require.NoError(t, err)
		assert.Equal(t, b, got)
	})

	t.Run("bare breakdown object without envelope", func(t *testing.T) {
		got, err := DeserializeJSON(`{
			"project_name": "Bare",
			"total_duration_units": 4,
			"duration_unit_label": "weeks",
			"methodology": "Agile",
			"source": "fallback",
			"phases": [{"name": "Build", "order": 0, "duration_units": 4, "percentage": 100}]
		}`)
		require.NoError(t, err)
		assert.Equal(t, "Bare", got.ProjectName)
		require.Len(t, got.Phases, 1)
		assert.NotNil(t, got.Phases[0].Deliverables)
		assert.NotNil(t, got.Phases[0].Activities)
	})

	t.Run("invalid JSON fails", func(t *testing.T) {
		_, err := DeserializeJSON("not json")
		require.Error(t, err)
	})

	t.Run("JSON without phases fails", func(t *testing.T) {
		_, err := DeserializeJSON(`{"project_name": "Empty"}`)
		require.Error(t, err)
	})
}

func TestCSV(t *testing.T) {
	t.Run("header and one row per phase", func(t *testing.T) {
		text, err := Serialize(sampleBreakdown(), FormatCSV)
		require.NoError(t, err)

		records, err := csv.NewReader(strings.NewReader(text)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, []string{"order", "name", "duration_units", "percentage", "deliverables", "activities", "description", "team_focus"}, records[0])
		assert.Equal(t, "0", records[1][0])
		assert.Equal(t, "Design", records[1][1])
		assert.Equal(t, "4", records[1][2])
		assert.Equal(t, "40.0", records[1][3])
		assert.Equal(t, "Mockups;Architecture doc", records[1][4])
	})

	t.Run("list delimiter inside an item is escaped", func(t *testing.T) {
		b := sampleBreakdown()
		b.Phases[0].Deliverables = []string{"Spec; draft", "Final spec"}

		text, err := Serialize(b, FormatCSV)
		require.NoError(t, err)

		records, err := csv.NewReader(strings.NewReader(text)).ReadAll()
		require.NoError(t, err)
		cell := records[1][4]
		assert.Equal(t, `Spec\; draft;Final spec`, cell)
		assert.Equal(t, []string{"Spec; draft", "Final spec"}, SplitList(cell))
	})
}

func TestMarkdown(t *testing.T) {
	text, err := Serialize(sampleBreakdown(), FormatMarkdown)
	require.NoError(t, err)

	assert.Contains(t, text, "# SDLC Breakdown: Task Tracker")
	assert.Contains(t, text, "**Total Duration:** 10 weeks")
	assert.Contains(t, text, "**Methodology:** Agile")
	assert.Contains(t, text, "| Design | 4 weeks | 40.0% |")
	assert.Contains(t, text, "### Phase 1: Design")
	assert.Contains(t, text, "### Phase 2: Build")
	assert.Contains(t, text, "- Mockups")
	assert.Contains(t, text, "**Team Focus:** Designers")
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{
		"json":     FormatJSON,
		"":         FormatJSON,
		"CSV":      FormatCSV,
		"markdown": FormatMarkdown,
		"md":       FormatMarkdown,
	} {
		got, err := ParseFormat(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xlsx")
	require.Error(t, err)
}

func TestSummary(t *testing.T) {
	text := Summary(sampleBreakdown())
	assert.Contains(t, text, "Project: Task Tracker")
	assert.Contains(t, text, "Number of Phases: 2")
	assert.Contains(t, text, "- Design: 4 weeks (40.0%)")
}

func TestGanttRows(t *testing.T) {
	rows := GanttRows(sampleBreakdown())
	require.Len(t, rows, 2)

	assert.Equal(t, GanttRow{Task: "Design", Start: 0, Finish: 4, Duration: 4, Team: "Designers"}, rows[0])
	assert.Equal(t, GanttRow{Task: "Build", Start: 4, Finish: 10, Duration: 6}, rows[1])
}
