package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartsdlc/go-sdlc-backend/internal/projects/domain"
	sdlc "github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectRepo persists generation requests as project rows.
type ProjectRepo struct {
	db *pgxpool.Pool
}

func NewProjectRepo(db *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{db: db}
}

func (r *ProjectRepo) Save(ctx context.Context, req sdlc.Request) (*domain.Project, error) {
	const q = `
insert into projects (name, description, total_duration_units, duration_unit_label, team_size, project_type, methodology)
values ($1, $2, $3, $4, $5, $6, $7)
returning id, created_at;
`
	p := domain.Project{
		Name:               req.ProjectName,
		Description:        req.Description,
		TotalDurationUnits: req.TotalDurationUnits,
		DurationUnitLabel:  req.DurationUnitLabel,
		TeamSize:           req.TeamSize,
		ProjectType:        req.ProjectType,
		Methodology:        string(req.Methodology),
	}
	err := r.db.QueryRow(ctx, q,
		p.Name, p.Description, p.TotalDurationUnits, p.DurationUnitLabel,
		p.TeamSize, p.ProjectType, p.Methodology,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const projectColumns = `
p.id, p.name, p.description, p.total_duration_units, p.duration_unit_label,
p.team_size, p.project_type, p.methodology, p.created_at,
b.id is not null as has_breakdown,
coalesce(b.total_phases, 0) as total_phases
`

const latestBreakdownJoin = `
left join lateral (
    select id, total_phases
    from sdlc_breakdowns
    where project_id = p.id
    order by created_at desc
    limit 1
) b on true
`

func (r *ProjectRepo) ListRecent(ctx context.Context, limit int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = 10
	}
	q := `select ` + projectColumns + ` from projects p ` + latestBreakdownJoin + `
order by p.created_at desc
limit $1;`

	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProjects(rows)
}

func (r *ProjectRepo) Search(ctx context.Context, query string, limit int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `select ` + projectColumns + ` from projects p ` + latestBreakdownJoin + `
where p.name ilike '%' || $1 || '%' or p.description ilike '%' || $1 || '%'
order by p.created_at desc
limit $2;`

	rows, err := r.db.Query(ctx, q, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProjects(rows)
}

func (r *ProjectRepo) Get(ctx context.Context, id int64) (*domain.Project, error) {
	q := `select ` + projectColumns + ` from projects p ` + latestBreakdownJoin + `
where p.id = $1;`

	rows, err := r.db.Query(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects, err := scanProjects(rows)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, ErrProjectNotFound
	}
	return &projects[0], nil
}

func scanProjects(rows pgx.Rows) ([]domain.Project, error) {
	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.TotalDurationUnits, &p.DurationUnitLabel,
			&p.TeamSize, &p.ProjectType, &p.Methodology, &p.CreatedAt,
			&p.HasBreakdown, &p.TotalPhases,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
