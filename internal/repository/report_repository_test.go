package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanlab/labdaily-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func reportRows(reports ...models.Report) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "student_name", "report_date", "work_done", "problems", "plan_tomorrow", "created_at"})
	for _, r := range reports {
		rows.AddRow(r.ID, r.StudentName, r.ReportDate, r.WorkDone, r.Problems, r.PlanTomorrow, r.CreatedAt)
	}
	return rows
}

func TestReportRepositoryFind(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, student_name, report_date::text AS report_date, work_done, problems, plan_tomorrow, created_at FROM daily_reports WHERE student_name = $1 AND report_date = $2")).
		WithArgs("张三", "2026-09-01").
		WillReturnRows(reportRows(models.Report{
			ID: 7, StudentName: "张三", ReportDate: "2026-09-01",
			WorkDone: "[PCR] ran gel", CreatedAt: time.Now(),
		}))

	report, err := repo.Find(context.Background(), "张三", "2026-09-01")
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, int64(7), report.ID)
	assert.Equal(t, "[PCR] ran gel", report.WorkDone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryFindMissingIsNotAnError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectQuery("SELECT .+ FROM daily_reports WHERE student_name").
		WithArgs("李四", "2026-09-01").
		WillReturnRows(reportRows())

	report, err := repo.Find(context.Background(), "李四", "2026-09-01")
	require.NoError(t, err)
	assert.Nil(t, report)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryUpsertInsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO daily_reports")).
		WithArgs("张三", "2026-09-01", "[PCR] ran gel", "", "", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created"}).AddRow(1, true))

	report := &models.Report{StudentName: "张三", ReportDate: "2026-09-01", WorkDone: "[PCR] ran gel"}
	created, err := repo.Upsert(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(1), report.ID)
	assert.False(t, report.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryUpsertOverwrite(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO daily_reports")).
		WithArgs("张三", "2026-09-01", "[PCR] re-ran gel, fixed ladder", "", "", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created"}).AddRow(1, false))

	report := &models.Report{StudentName: "张三", ReportDate: "2026-09-01", WorkDone: "[PCR] re-ran gel, fixed ladder"}
	created, err := repo.Upsert(context.Background(), report)
	require.NoError(t, err)
	assert.False(t, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryListByDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, student_name, report_date::text AS report_date, work_done, problems, plan_tomorrow, created_at FROM daily_reports WHERE report_date = $1 ORDER BY created_at DESC")).
		WithArgs("2026-09-01").
		WillReturnRows(reportRows(
			models.Report{ID: 2, StudentName: "李四", ReportDate: "2026-09-01", WorkDone: "[文献阅读]", CreatedAt: now},
			models.Report{ID: 1, StudentName: "张三", ReportDate: "2026-09-01", WorkDone: "[PCR] ran gel", CreatedAt: now.Add(-time.Hour)},
		))

	reports, err := repo.ListByDate(context.Background(), "2026-09-01")
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "李四", reports[0].StudentName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositorySubmittedNames(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT student_name FROM daily_reports WHERE report_date = $1 ORDER BY created_at DESC")).
		WithArgs("2026-09-01").
		WillReturnRows(sqlmock.NewRows([]string{"student_name"}).AddRow("张三").AddRow("李四"))

	names, err := repo.SubmittedNames(context.Background(), "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"张三", "李四"}, names)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositorySubmittedNamesEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectQuery("SELECT student_name FROM daily_reports").
		WithArgs("2026-09-05").
		WillReturnRows(sqlmock.NewRows([]string{"student_name"}))

	names, err := repo.SubmittedNames(context.Background(), "2026-09-05")
	require.NoError(t, err)
	assert.Empty(t, names)
	require.NoError(t, mock.ExpectationsWereMet())
}
