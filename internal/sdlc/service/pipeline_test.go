package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
)

func request(total int, m domain.Methodology) domain.Request {
	return domain.Request{
		ProjectName:        "Task Tracker",
		Methodology:        m,
		TotalDurationUnits: total,
		DurationUnitLabel:  "weeks",
	}
}

func TestBuildBreakdown(t *testing.T) {
	t.Run("structured payload inside prose is extracted and reconciled", func(t *testing.T) {
		text := "Here is the plan:\n```json\n{\"phases\":[{\"name\":\"Design\",\"percentage\":50},{\"name\":\"Build\",\"percentage\":50}]}\n```\nLet me know!"
		result, err := BuildBreakdown(request(10, domain.MethodologyAgile), text)
		require.NoError(t, err)

		b := result.Breakdown
		assert.Equal(t, domain.SourceAIGenerated, b.Source)
		require.Len(t, b.Phases, 2)
		assert.Equal(t, "Design", b.Phases[0].Name)
		assert.Equal(t, 5, b.Phases[0].DurationUnits)
		assert.Equal(t, "Build", b.Phases[1].Name)
		assert.Equal(t, 5, b.Phases[1].DurationUnits)
	})

	t.Run("unusable response falls back to the methodology template", func(t *testing.T) {
		result, err := BuildBreakdown(request(12, domain.MethodologyAgile), "I cannot help with that.")
		require.NoError(t, err)

		b := result.Breakdown
		assert.Equal(t, domain.SourceFallback, b.Source)
		require.NotEmpty(t, b.Phases)

		sum := 0
		for _, p := range b.Phases {
			sum += p.DurationUnits
		}
		assert.Equal(t, 12, sum)
		require.NotEmpty(t, result.Warnings)
		assert.Contains(t, result.Warnings[0], "fallback")
	})

	t.Run("empty text is the unavailable signal", func(t *testing.T) {
		result, err := BuildBreakdown(request(8, domain.MethodologyWaterfall), "")
		require.NoError(t, err)

		assert.Equal(t, domain.SourceFallback, result.Breakdown.Source)
		sum := 0
		for _, p := range result.Breakdown.Phases {
			sum += p.DurationUnits
		}
		assert.Equal(t, 8, sum)
	})

	t.Run("payload with zero usable phases falls back", func(t *testing.T) {
		result, err := BuildBreakdown(request(6, domain.MethodologyDevOps), `{"phases":[{"percentage":100}]}`)
		require.NoError(t, err)
		assert.Equal(t, domain.SourceFallback, result.Breakdown.Source)
	})

	t.Run("validation warnings are carried through", func(t *testing.T) {
		text := `{"phases":[{"percentage":30},{"name":"Build","percentage":70}]}`
		result, err := BuildBreakdown(request(10, domain.MethodologyAgile), text)
		require.NoError(t, err)

		assert.Equal(t, domain.SourceAIGenerated, result.Breakdown.Source)
		require.Len(t, result.Breakdown.Phases, 1)
		require.NotEmpty(t, result.Warnings)
		assert.Contains(t, result.Warnings[0], "no name")
	})

	t.Run("invalid total duration is rejected", func(t *testing.T) {
		_, err := BuildBreakdown(request(0, domain.MethodologyAgile), "")
		require.ErrorIs(t, err, domain.ErrInvalidDuration)

		_, err = BuildBreakdown(request(-3, domain.MethodologyAgile), "")
		require.ErrorIs(t, err, domain.ErrInvalidDuration)
	})

	t.Run("missing project name is rejected", func(t *testing.T) {
		req := request(10, domain.MethodologyAgile)
		req.ProjectName = "  "
		_, err := BuildBreakdown(req, "")
		require.ErrorIs(t, err, domain.ErrMissingProjectName)
	})

	t.Run("every produced breakdown honors the invariants", func(t *testing.T) {
		inputs := []string{
			"",
			"no payload here",
			`{"phases":[{"name":"A","duration":3},{"name":"B"},{"name":"C","percentage":10}]}`,
			`[{"name":"Solo"}]`,
		}
		for _, text := range inputs {
			for _, total := range []int{1, 5, 12, 52} {
				result, err := BuildBreakdown(request(total, domain.MethodologyHybrid), text)
				require.NoError(t, err, "text=%q total=%d", text, total)

				b := result.Breakdown
				require.NotEmpty(t, b.Phases)
				sum := 0
				for i, p := range b.Phases {
					assert.Equal(t, i, p.Order)
					sum += p.DurationUnits
					if total >= len(b.Phases) {
						assert.Greater(t, p.DurationUnits, 0)
					}
				}
				assert.Equal(t, total, sum)
			}
		}
	})
}
