package template

import "github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"

// Draft deterministically builds a fallback draft from the request
// descriptor, without consulting any external system. The caller
// guarantees a positive total duration; under that precondition this
// never fails. Calling twice with the same request yields identical
// drafts.
func Draft(req domain.Request) *domain.Draft {
	table := Table(req.Methodology)
	weights := AdjustedWeights(table, req.ProjectType, req.TeamSize)

	phases := make([]domain.DraftPhase, len(table))
	for i, tpl := range table {
		w := weights[i]
		phases[i] = domain.DraftPhase{
			Name:         tpl.Name,
			Description:  tpl.Description,
			TeamFocus:    tpl.TeamFocus,
			Percentage:   &w,
			Deliverables: append([]string{}, tpl.Deliverables...),
			Activities:   append([]string{}, tpl.Activities...),
		}
	}

	return &domain.Draft{
		ProjectName: req.ProjectName,
		Methodology: req.Methodology,
		Phases:      phases,
	}
}
