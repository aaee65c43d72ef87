package http

import sdlc "github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"

// generateReq is the body of POST /projects/breakdown: the request
// descriptor from the form layer plus an optional session id for the
// history store.
type generateReq struct {
	ProjectName        string `json:"project_name" binding:"required"`
	Description        string `json:"description"`
	ProjectType        string `json:"project_type"`
	TeamSize           string `json:"team_size"`
	Methodology        string `json:"methodology"`
	TotalDurationUnits int    `json:"total_duration_units" binding:"required"`
	DurationUnitLabel  string `json:"duration_unit_label"`
	SessionID          string `json:"session_id"`
}

func (r generateReq) descriptor() sdlc.Request {
	return sdlc.Request{
		ProjectName:        r.ProjectName,
		Description:        r.Description,
		ProjectType:        r.ProjectType,
		TeamSize:           r.TeamSize,
		Methodology:        sdlc.ParseMethodology(r.Methodology),
		TotalDurationUnits: r.TotalDurationUnits,
		DurationUnitLabel:  r.DurationUnitLabel,
	}
}
