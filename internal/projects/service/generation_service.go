package service

import (
	"context"

	"github.com/smartsdlc/go-sdlc-backend/internal/history"
	projdomain "github.com/smartsdlc/go-sdlc-backend/internal/projects/domain"
	"github.com/smartsdlc/go-sdlc-backend/internal/projects/repository"
	sdlc "github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/llm"
	pipeline "github.com/smartsdlc/go-sdlc-backend/internal/sdlc/service"
)

// GenerationService ties the collaborators together: it calls the
// model (when configured), runs the normalization pipeline, and
// persists the result. Persistence problems never block the response;
// the caller still gets a breakdown.
type GenerationService struct {
	projects   *repository.ProjectRepo
	breakdowns *repository.BreakdownRepo
	sessions   *history.Store
	model      *llm.Client
}

func NewGenerationService(
	projects *repository.ProjectRepo,
	breakdowns *repository.BreakdownRepo,
	sessions *history.Store,
	model *llm.Client,
) *GenerationService {
	return &GenerationService{
		projects:   projects,
		breakdowns: breakdowns,
		sessions:   sessions,
		model:      model,
	}
}

// GenerationResult is what the breakdown endpoint returns: the saved
// project row, the canonical breakdown, pipeline warnings, and the
// session id the history store filed it under.
type GenerationResult struct {
	Project   *projdomain.Project `json:"project,omitempty"`
	Breakdown *sdlc.Breakdown     `json:"breakdown"`
	Warnings  []string            `json:"warnings,omitempty"`
	SessionID string              `json:"session_id,omitempty"`
}

// Generate runs one full generation for a request descriptor. Only an
// invalid descriptor produces an error; AI and storage failures
// degrade to the fallback path and warnings.
func (s *GenerationService) Generate(ctx context.Context, req sdlc.Request, sessionID string) (*GenerationResult, error) {
	logger := NewLogger(ctx)

	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Methodology = sdlc.ParseMethodology(string(req.Methodology))
	if req.DurationUnitLabel == "" {
		req.DurationUnitLabel = "weeks"
	}

	aiText := ""
	if s.model != nil && s.model.IsConfigured() {
		text, err := s.model.GenerateBreakdown(ctx, req)
		if err != nil {
			logger.Warnf("generate", "model call failed, using fallback: %v", err)
		} else {
			aiText = text
		}
	} else {
		logger.Infof("generate", "model not configured, using fallback templates")
	}

	result, err := pipeline.BuildBreakdown(req, aiText)
	if err != nil {
		return nil, err
	}

	out := &GenerationResult{
		Breakdown: result.Breakdown,
		Warnings:  result.Warnings,
	}

	if s.projects != nil {
		project, err := s.projects.Save(ctx, req)
		if err != nil {
			logger.Error("save_project", err)
		} else {
			out.Project = project
			if s.breakdowns != nil {
				if _, err := s.breakdowns.Save(ctx, project.ID, aiText, result.Breakdown); err != nil {
					logger.Error("save_breakdown", err)
				}
			}
		}
	}

	if s.sessions != nil {
		sid, err := s.sessions.Save(ctx, sessionID, result.Breakdown)
		if err != nil {
			logger.Error("save_session", err)
		} else {
			out.SessionID = sid
		}
	}

	logger.Infof("generate", "produced breakdown source=%s phases=%d total=%d",
		result.Breakdown.Source, len(result.Breakdown.Phases), result.Breakdown.TotalDurationUnits)
	return out, nil
}
