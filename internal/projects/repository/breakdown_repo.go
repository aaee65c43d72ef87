package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	projdomain "github.com/smartsdlc/go-sdlc-backend/internal/projects/domain"
	sdlc "github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
)

var ErrBreakdownNotFound = errors.New("breakdown not found")

// BreakdownRepo persists reconciled breakdowns and their per-phase
// rows, and answers the analytics aggregate queries. It runs on
// database/sql with the pq driver so list columns can use text[].
type BreakdownRepo struct {
	db *sql.DB
}

func NewBreakdownRepo(db *sql.DB) *BreakdownRepo {
	return &BreakdownRepo{db: db}
}

// Save stores the raw AI response, the canonical breakdown JSON, and
// one row per phase, all in a single transaction.
func (r *BreakdownRepo) Save(ctx context.Context, projectID int64, aiResponse string, b *sdlc.Breakdown) (int64, error) {
	parsed, err := json.Marshal(b)
	if err != nil {
		return 0, fmt.Errorf("marshal breakdown: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var breakdownID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO sdlc_breakdowns (project_id, ai_response, parsed_data, total_phases, source)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, projectID, aiResponse, parsed, len(b.Phases), string(b.Source)).Scan(&breakdownID)
	if err != nil {
		return 0, fmt.Errorf("insert breakdown: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sdlc_phases (
			breakdown_id, phase_order, name, description,
			duration_units, percentage, deliverables, activities, team_focus
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare phase insert: %w", err)
	}
	defer stmt.Close()

	for _, phase := range b.Phases {
		_, err = stmt.ExecContext(ctx,
			breakdownID,
			phase.Order,
			phase.Name,
			phase.Description,
			phase.DurationUnits,
			phase.Percentage,
			pq.Array(phase.Deliverables),
			pq.Array(phase.Activities),
			phase.TeamFocus,
		)
		if err != nil {
			return 0, fmt.Errorf("insert phase %d: %w", phase.Order, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit breakdown: %w", err)
	}
	return breakdownID, nil
}

// LatestForProject loads the most recent breakdown stored for a
// project from its canonical JSON column.
func (r *BreakdownRepo) LatestForProject(ctx context.Context, projectID int64) (*sdlc.Breakdown, error) {
	var parsed []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT parsed_data
		FROM sdlc_breakdowns
		WHERE project_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, projectID).Scan(&parsed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBreakdownNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load breakdown: %w", err)
	}

	var b sdlc.Breakdown
	if err := json.Unmarshal(parsed, &b); err != nil {
		return nil, fmt.Errorf("unmarshal breakdown: %w", err)
	}
	return &b, nil
}

// Analytics computes the dashboard aggregate across all projects.
func (r *BreakdownRepo) Analytics(ctx context.Context) (*projdomain.Analytics, error) {
	out := &projdomain.Analytics{
		MethodologyDistribution: map[string]int64{},
		ProjectTypeDistribution: map[string]int64{},
		AverageDurationByType:   map[string]float64{},
	}

	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&out.TotalProjects)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sdlc_breakdowns`).Scan(&out.TotalBreakdowns)
	if err != nil {
		return nil, fmt.Errorf("count breakdowns: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT methodology, COUNT(*)
		FROM projects
		GROUP BY methodology
	`)
	if err != nil {
		return nil, fmt.Errorf("methodology distribution: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var methodology string
		var count int64
		if err := rows.Scan(&methodology, &count); err != nil {
			return nil, err
		}
		out.MethodologyDistribution[methodology] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	typeRows, err := r.db.QueryContext(ctx, `
		SELECT project_type, COUNT(*), AVG(total_duration_units)
		FROM projects
		GROUP BY project_type
	`)
	if err != nil {
		return nil, fmt.Errorf("project type distribution: %w", err)
	}
	defer typeRows.Close()
	for typeRows.Next() {
		var projectType string
		var count int64
		var avg float64
		if err := typeRows.Scan(&projectType, &count, &avg); err != nil {
			return nil, err
		}
		out.ProjectTypeDistribution[projectType] = count
		out.AverageDurationByType[projectType] = avg
	}
	if err := typeRows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
