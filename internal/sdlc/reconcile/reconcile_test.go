package reconcile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
)

func f(v float64) *float64 { return &v }

func draftOf(phases ...domain.DraftPhase) *domain.Draft {
	return &domain.Draft{Phases: phases}
}

func request(total int) domain.Request {
	return domain.Request{
		ProjectName:        "Test Project",
		Methodology:        domain.MethodologyAgile,
		TotalDurationUnits: total,
		DurationUnitLabel:  "weeks",
	}
}

func TestApportion(t *testing.T) {
	t.Run("equal weights distribute remainder to lowest order", func(t *testing.T) {
		assert.Equal(t, []int{4, 3, 3}, Apportion([]float64{1, 1, 1}, 10))
	})

	t.Run("sum is always exact", func(t *testing.T) {
		cases := []struct {
			weights []float64
			total   int
		}{
			{[]float64{10, 15, 10, 50, 10, 5}, 12},
			{[]float64{15, 20, 35, 20, 5, 5}, 52},
			{[]float64{1, 2, 3}, 7},
			{[]float64{0.1, 0.1, 0.8}, 9},
			{[]float64{100}, 3},
			{[]float64{30, 30}, 1},
		}
		for _, tc := range cases {
			got := Apportion(tc.weights, tc.total)
			sum := 0
			for _, d := range got {
				sum += d
			}
			assert.Equal(t, tc.total, sum, "weights %v total %d", tc.weights, tc.total)
		}
	})

	t.Run("no zero duration when total covers every phase", func(t *testing.T) {
		got := Apportion([]float64{1, 1, 98}, 10)
		sum := 0
		for _, d := range got {
			assert.Greater(t, d, 0)
			sum += d
		}
		assert.Equal(t, 10, sum)
	})

	t.Run("zero durations allowed when total is too small", func(t *testing.T) {
		got := Apportion([]float64{1, 1, 1}, 2)
		sum := 0
		for _, d := range got {
			sum += d
		}
		assert.Equal(t, 2, sum)
	})

	t.Run("all-zero weights degrade to equal shares", func(t *testing.T) {
		assert.Equal(t, []int{4, 3, 3}, Apportion([]float64{0, 0, 0}, 10))
	})

	t.Run("bump borrows from the largest phase", func(t *testing.T) {
		got := Apportion([]float64{0, 0, 100}, 5)
		assert.Equal(t, []int{1, 1, 3}, got)
	})
}

func TestBreakdown(t *testing.T) {
	t.Run("explicit durations win over percentages", func(t *testing.T) {
		draft := draftOf(
			domain.DraftPhase{Name: "Design", Duration: f(2), Percentage: f(90)},
			domain.DraftPhase{Name: "Build", Duration: f(6)},
		)
		b, err := Breakdown(draft, request(8), domain.SourceAIGenerated)
		require.NoError(t, err)

		assert.Equal(t, 2, b.Phases[0].DurationUnits)
		assert.Equal(t, 6, b.Phases[1].DurationUnits)
	})

	t.Run("percentages used when no durations", func(t *testing.T) {
		draft := draftOf(
			domain.DraftPhase{Name: "Design", Percentage: f(50)},
			domain.DraftPhase{Name: "Build", Percentage: f(50)},
		)
		b, err := Breakdown(draft, request(10), domain.SourceAIGenerated)
		require.NoError(t, err)

		assert.Equal(t, 5, b.Phases[0].DurationUnits)
		assert.Equal(t, 5, b.Phases[1].DurationUnits)
	})

	t.Run("weight vector far from 100 is still normalized", func(t *testing.T) {
		// Percentages summing to 60: the reconciler normalizes by the
		// weight sum, it never assumes the vector totals 100.
		draft := draftOf(
			domain.DraftPhase{Name: "Design", Percentage: f(20)},
			domain.DraftPhase{Name: "Build", Percentage: f(40)},
		)
		b, err := Breakdown(draft, request(9), domain.SourceAIGenerated)
		require.NoError(t, err)

		assert.Equal(t, 3, b.Phases[0].DurationUnits)
		assert.Equal(t, 6, b.Phases[1].DurationUnits)
	})

	t.Run("invariants hold for a mixed draft", func(t *testing.T) {
		draft := draftOf(
			domain.DraftPhase{Name: "Plan", Duration: f(1.5)},
			domain.DraftPhase{Name: "Design", Percentage: f(25)},
			domain.DraftPhase{Name: "Build"},
			domain.DraftPhase{Name: "Test", Percentage: f(10)},
		)
		total := 13
		b, err := Breakdown(draft, request(total), domain.SourceAIGenerated)
		require.NoError(t, err)

		sum := 0
		pctSum := 0.0
		for i, p := range b.Phases {
			assert.Equal(t, i, p.Order)
			assert.GreaterOrEqual(t, p.DurationUnits, 0)
			assert.NotNil(t, p.Deliverables)
			assert.NotNil(t, p.Activities)
			sum += p.DurationUnits
			pctSum += p.Percentage
		}
		assert.Equal(t, total, sum)
		assert.LessOrEqual(t, math.Abs(pctSum-100), 0.5)
	})

	t.Run("empty draft fails", func(t *testing.T) {
		_, err := Breakdown(draftOf(), request(10), domain.SourceAIGenerated)
		require.ErrorIs(t, err, domain.ErrEmptyDraft)

		_, err = Breakdown(nil, request(10), domain.SourceAIGenerated)
		require.ErrorIs(t, err, domain.ErrEmptyDraft)
	})

	t.Run("request metadata is carried onto the breakdown", func(t *testing.T) {
		draft := draftOf(domain.DraftPhase{Name: "Build"})
		b, err := Breakdown(draft, request(4), domain.SourceFallback)
		require.NoError(t, err)

		assert.Equal(t, "Test Project", b.ProjectName)
		assert.Equal(t, 4, b.TotalDurationUnits)
		assert.Equal(t, "weeks", b.DurationUnitLabel)
		assert.Equal(t, domain.MethodologyAgile, b.Methodology)
		assert.Equal(t, domain.SourceFallback, b.Source)
	})
}
