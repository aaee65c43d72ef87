// Package reconcile turns a validated draft plus a total duration into
// exact integer phase durations using largest-remainder apportionment.
package reconcile

import (
	"math"
	"sort"

	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
)

// Breakdown builds a canonical Breakdown from draft so that phase
// durations sum exactly to req.TotalDurationUnits. The request is
// assumed valid (total > 0); that contract is enforced at the service
// boundary. Fails only when the draft has zero phases.
func Breakdown(draft *domain.Draft, req domain.Request, source domain.Source) (*domain.Breakdown, error) {
	if draft == nil || len(draft.Phases) == 0 {
		return nil, domain.ErrEmptyDraft
	}

	weights := phaseWeights(draft.Phases)
	durations := Apportion(weights, req.TotalDurationUnits)

	total := req.TotalDurationUnits
	phases := make([]domain.Phase, len(draft.Phases))
	for i, dp := range draft.Phases {
		phases[i] = domain.Phase{
			Name:          dp.Name,
			Order:         i,
			DurationUnits: durations[i],
			Percentage:    100 * float64(durations[i]) / float64(total),
			Description:   dp.Description,
			Deliverables:  nonNil(dp.Deliverables),
			Activities:    nonNil(dp.Activities),
			TeamFocus:     dp.TeamFocus,
		}
	}

	return &domain.Breakdown{
		ProjectName:        req.ProjectName,
		TotalDurationUnits: total,
		DurationUnitLabel:  req.DurationUnitLabel,
		Methodology:        req.Methodology,
		Source:             source,
		Phases:             phases,
	}, nil
}

// phaseWeights picks each phase's relative sizing signal: explicit
// duration first, else explicit percentage, else 1 (equal share).
// Non-positive signals collapse to zero weight; an all-zero vector
// degrades to equal shares so apportionment stays defined.
func phaseWeights(phases []domain.DraftPhase) []float64 {
	weights := make([]float64, len(phases))
	sum := 0.0
	for i, p := range phases {
		w := 1.0
		switch {
		case p.Duration != nil:
			w = *p.Duration
		case p.Percentage != nil:
			w = *p.Percentage
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			w = 0
		}
		weights[i] = w
		sum += w
	}
	if sum == 0 {
		for i := range weights {
			weights[i] = 1
		}
	}
	return weights
}

// Apportion assigns integer units to weights so they sum exactly to
// total: each slot gets floor(ideal), then the leftover units go one
// at a time to the largest fractional remainders (ties broken by
// lowest index). Slots that end up at zero while total >= len(weights)
// are bumped to one by borrowing from the currently largest slot
// (ties broken by highest index), so no phase degenerates to zero
// length when there is enough duration to avoid it.
func Apportion(weights []float64, total int) []int {
	n := len(weights)
	if n == 0 {
		return nil
	}

	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		sum = float64(n)
		weights = make([]float64, n)
		for i := range weights {
			weights[i] = 1
		}
	}

	durations := make([]int, n)
	fractions := make([]float64, n)
	assigned := 0
	for i, w := range weights {
		ideal := float64(total) * w / sum
		durations[i] = int(math.Floor(ideal))
		fractions[i] = ideal - math.Floor(ideal)
		assigned += durations[i]
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if fractions[order[a]] != fractions[order[b]] {
			return fractions[order[a]] > fractions[order[b]]
		}
		return order[a] < order[b]
	})

	for k := 0; assigned < total; k++ {
		durations[order[k%n]]++
		assigned++
	}

	if total >= n {
		bumpZeroes(durations)
	}
	return durations
}

// bumpZeroes lifts zero-length slots to one unit each, borrowing one
// unit per bump from the largest slot (ties: highest index). The
// caller guarantees total >= len(durations), so a donor with more
// than one unit always exists.
func bumpZeroes(durations []int) {
	for i := range durations {
		if durations[i] != 0 {
			continue
		}
		donor := -1
		for j, d := range durations {
			if donor == -1 || d >= durations[donor] {
				donor = j
			}
		}
		if donor == -1 || durations[donor] <= 1 {
			continue
		}
		durations[donor]--
		durations[i]++
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
