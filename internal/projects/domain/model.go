package domain

import "time"

// Project is one saved generation request. It is storage-agnostic and
// shared across the repository and HTTP layers.
type Project struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	TotalDurationUnits int       `json:"total_duration_units"`
	DurationUnitLabel  string    `json:"duration_unit_label"`
	TeamSize           string    `json:"team_size"`
	ProjectType        string    `json:"project_type"`
	Methodology        string    `json:"methodology"`
	CreatedAt          time.Time `json:"created_at"`

	// Filled by list/search queries from the latest stored breakdown.
	HasBreakdown bool `json:"has_breakdown"`
	TotalPhases  int  `json:"total_phases"`
}

// Analytics is the aggregate served by the analytics endpoint and
// cached nightly by the snapshot job.
type Analytics struct {
	TotalProjects           int64              `json:"total_projects"`
	TotalBreakdowns         int64              `json:"total_breakdowns"`
	MethodologyDistribution map[string]int64   `json:"methodology_distribution"`
	ProjectTypeDistribution map[string]int64   `json:"project_type_distribution"`
	AverageDurationByType   map[string]float64 `json:"average_duration_by_type"`
}
