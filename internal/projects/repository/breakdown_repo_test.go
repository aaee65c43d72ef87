package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdlc "github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
)

func mockRepo(t *testing.T) (*BreakdownRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBreakdownRepo(db), mock
}

func storedBreakdown() *sdlc.Breakdown {
	return &sdlc.Breakdown{
		ProjectName:        "Task Tracker",
		TotalDurationUnits: 10,
		DurationUnitLabel:  "weeks",
		Methodology:        sdlc.MethodologyAgile,
		Source:             sdlc.SourceAIGenerated,
		Phases: []sdlc.Phase{
			{Name: "Design", Order: 0, DurationUnits: 4, Percentage: 40, Deliverables: []string{"Mockups"}, Activities: []string{}},
			{Name: "Build", Order: 1, DurationUnits: 6, Percentage: 60, Deliverables: []string{}, Activities: []string{"Coding"}},
		},
	}
}

func TestBreakdownRepoSave(t *testing.T) {
	t.Run("stores the breakdown and one row per phase in a transaction", func(t *testing.T) {
		repo, mock := mockRepo(t)
		b := storedBreakdown()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO sdlc_breakdowns`).
			WithArgs(int64(7), "raw response", sqlmock.AnyArg(), 2, "ai_generated").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
		prep := mock.ExpectPrepare(`INSERT INTO sdlc_phases`)
		prep.ExpectExec().
			WithArgs(int64(42), 0, "Design", "", 4, 40.0, sqlmock.AnyArg(), sqlmock.AnyArg(), "").
			WillReturnResult(sqlmock.NewResult(1, 1))
		prep.ExpectExec().
			WithArgs(int64(42), 1, "Build", "", 6, 60.0, sqlmock.AnyArg(), sqlmock.AnyArg(), "").
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		id, err := repo.Save(context.Background(), 7, "raw response", b)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a failed phase insert rolls the transaction back", func(t *testing.T) {
		repo, mock := mockRepo(t)
		b := storedBreakdown()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO sdlc_breakdowns`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
		prep := mock.ExpectPrepare(`INSERT INTO sdlc_phases`)
		prep.ExpectExec().WillReturnError(assert.AnError)
		mock.ExpectRollback()

		_, err := repo.Save(context.Background(), 7, "raw response", b)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insert phase 0")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBreakdownRepoLatestForProject(t *testing.T) {
	t.Run("returns the stored canonical breakdown", func(t *testing.T) {
		repo, mock := mockRepo(t)
		b := storedBreakdown()
		parsed, err := json.Marshal(b)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT parsed_data`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"parsed_data"}).AddRow(parsed))

		got, err := repo.LatestForProject(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, b, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows maps to the not-found sentinel", func(t *testing.T) {
		repo, mock := mockRepo(t)

		mock.ExpectQuery(`SELECT parsed_data`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"parsed_data"}))

		_, err := repo.LatestForProject(context.Background(), 7)
		require.ErrorIs(t, err, ErrBreakdownNotFound)
	})
}

func TestBreakdownRepoAnalytics(t *testing.T) {
	repo, mock := mockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM projects`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sdlc_breakdowns`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))
	mock.ExpectQuery(`SELECT methodology, COUNT\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"methodology", "count"}).
			AddRow("Agile", int64(3)).
			AddRow("Waterfall", int64(2)))
	mock.ExpectQuery(`SELECT project_type, COUNT\(\*\), AVG\(total_duration_units\)`).
		WillReturnRows(sqlmock.NewRows([]string{"project_type", "count", "avg"}).
			AddRow("Web Application", int64(4), 11.5).
			AddRow("Mobile Application", int64(1), 8.0))

	got, err := repo.Analytics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(5), got.TotalProjects)
	assert.Equal(t, int64(4), got.TotalBreakdowns)
	assert.Equal(t, int64(3), got.MethodologyDistribution["Agile"])
	assert.Equal(t, int64(2), got.MethodologyDistribution["Waterfall"])
	assert.Equal(t, int64(4), got.ProjectTypeDistribution["Web Application"])
	assert.Equal(t, 11.5, got.AverageDurationByType["Web Application"])
	require.NoError(t, mock.ExpectationsWereMet())
}
