package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tanlab/labdaily-api/internal/models"
)

const reportColumns = `id, student_name, report_date::text AS report_date, work_done, problems, plan_tomorrow, created_at`

// ReportRepository persists daily reports. The table carries a unique
// constraint on (student_name, report_date); the upsert leans on it so
// concurrent submissions for the same key cannot produce duplicates.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs the repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Find returns the report for the key, or nil when none exists. A missing
// report is an expected outcome, not an error.
func (r *ReportRepository) Find(ctx context.Context, student, date string) (*models.Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM daily_reports WHERE student_name = $1 AND report_date = $2`, reportColumns)
	var report models.Report
	if err := r.db.GetContext(ctx, &report, query, student, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find report: %w", err)
	}
	return &report, nil
}

// Upsert inserts the report or, when a row already exists for the key,
// overwrites its text fields and refreshes created_at. Runs as a single
// atomic statement; last write wins per day. Returns whether a new row
// was created (xmax = 0 only on freshly inserted rows).
func (r *ReportRepository) Upsert(ctx context.Context, report *models.Report) (bool, error) {
	const query = `INSERT INTO daily_reports (student_name, report_date, work_done, problems, plan_tomorrow, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (student_name, report_date)
DO UPDATE SET work_done = EXCLUDED.work_done, problems = EXCLUDED.problems, plan_tomorrow = EXCLUDED.plan_tomorrow, created_at = EXCLUDED.created_at
RETURNING id, (xmax = 0) AS created`

	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	var created bool
	row := r.db.QueryRowxContext(ctx, query,
		report.StudentName,
		report.ReportDate,
		report.WorkDone,
		report.Problems,
		report.PlanTomorrow,
		report.CreatedAt,
	)
	if err := row.Scan(&report.ID, &created); err != nil {
		return false, fmt.Errorf("upsert report: %w", err)
	}
	return created, nil
}

// ListByDate returns all reports for the date, newest submission first.
func (r *ReportRepository) ListByDate(ctx context.Context, date string) ([]models.Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM daily_reports WHERE report_date = $1 ORDER BY created_at DESC`, reportColumns)
	reports := make([]models.Report, 0)
	if err := r.db.SelectContext(ctx, &reports, query, date); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// SubmittedNames returns the names that have a report for the date.
func (r *ReportRepository) SubmittedNames(ctx context.Context, date string) ([]string, error) {
	const query = `SELECT student_name FROM daily_reports WHERE report_date = $1 ORDER BY created_at DESC`
	names := make([]string, 0)
	if err := r.db.SelectContext(ctx, &names, query, date); err != nil {
		return nil, fmt.Errorf("list submitted names: %w", err)
	}
	return names, nil
}
