package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/reconcile"
)

func TestTable(t *testing.T) {
	t.Run("every methodology table is non-empty and weighted to 100", func(t *testing.T) {
		for _, m := range []domain.Methodology{
			domain.MethodologyAgile,
			domain.MethodologyWaterfall,
			domain.MethodologyDevOps,
			domain.MethodologyHybrid,
		} {
			table := Table(m)
			require.NotEmpty(t, table, string(m))

			sum := 0.0
			for _, phase := range table {
				assert.NotEmpty(t, phase.Name)
				assert.Greater(t, phase.Weight, 0.0)
				sum += phase.Weight
			}
			assert.Equal(t, 100.0, sum, string(m))
		}
	})

	t.Run("unknown methodology falls back to the generic table", func(t *testing.T) {
		table := Table(domain.Methodology("Extreme Programming"))
		require.Len(t, table, 5)
		assert.Equal(t, "Requirements Analysis & Planning", table[0].Name)
	})
}

func TestAdjustedWeights(t *testing.T) {
	t.Run("unknown type and team size leave weights untouched", func(t *testing.T) {
		table := Table(domain.MethodologyWaterfall)
		weights := AdjustedWeights(table, "", "")
		for i, phase := range table {
			assert.Equal(t, phase.Weight, weights[i])
		}
	})

	t.Run("mobile projects boost testing share", func(t *testing.T) {
		table := Table(domain.MethodologyAgile)
		base := AdjustedWeights(table, "", "Medium (4-8)")
		mobile := AdjustedWeights(table, "Mobile Application", "Medium (4-8)")

		for i, phase := range table {
			if phase.Name == "Testing & Integration" {
				assert.Greater(t, mobile[i], base[i])
			}
		}
	})

	t.Run("large teams shift share into coordination phases", func(t *testing.T) {
		table := Table(domain.MethodologyAgile)
		small := AdjustedWeights(table, "", "Small (1-3)")
		enterprise := AdjustedWeights(table, "", "Enterprise (15+)")

		for i, phase := range table {
			if phase.Coordination {
				assert.Greater(t, enterprise[i], small[i])
			} else {
				assert.Equal(t, small[i], enterprise[i])
			}
		}
	})
}

func TestDraft(t *testing.T) {
	req := domain.Request{
		ProjectName:        "Inventory Service",
		ProjectType:        "API/Backend Service",
		TeamSize:           "Medium (4-8)",
		Methodology:        domain.MethodologyAgile,
		TotalDurationUnits: 12,
		DurationUnitLabel:  "weeks",
	}

	t.Run("deterministic for identical requests", func(t *testing.T) {
		first := Draft(req)
		second := Draft(req)
		require.Equal(t, first, second)

		b1, err := reconcile.Breakdown(first, req, domain.SourceFallback)
		require.NoError(t, err)
		b2, err := reconcile.Breakdown(second, req, domain.SourceFallback)
		require.NoError(t, err)
		assert.Equal(t, b1, b2)
	})

	t.Run("reconciles to the exact total", func(t *testing.T) {
		b, err := reconcile.Breakdown(Draft(req), req, domain.SourceFallback)
		require.NoError(t, err)

		sum := 0
		for _, p := range b.Phases {
			sum += p.DurationUnits
		}
		assert.Equal(t, req.TotalDurationUnits, sum)
		assert.Len(t, b.Phases, len(Table(domain.MethodologyAgile)))
	})

	t.Run("carries template deliverables and activities", func(t *testing.T) {
		draft := Draft(req)
		for _, p := range draft.Phases {
			assert.NotEmpty(t, p.Deliverables)
			assert.NotEmpty(t, p.Activities)
			assert.NotEmpty(t, p.Description)
			require.NotNil(t, p.Percentage)
		}
	})
}
