package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tanlab/labdaily-api/internal/dto"
	"github.com/tanlab/labdaily-api/internal/models"
	"github.com/tanlab/labdaily-api/internal/roster"
	"github.com/tanlab/labdaily-api/internal/worklog"
	appErrors "github.com/tanlab/labdaily-api/pkg/errors"
)

type reportStore interface {
	Find(ctx context.Context, student, date string) (*models.Report, error)
	Upsert(ctx context.Context, report *models.Report) (bool, error)
	ListByDate(ctx context.Context, date string) ([]models.Report, error)
	SubmittedNames(ctx context.Context, date string) ([]string, error)
}

// SubmitResult reports whether the submission created a new row and the
// message shown to the student.
type SubmitResult struct {
	Created bool
	Message string
}

// ReportService implements the submission and status flows around the
// report store: roster validation, the UTC+8 "today" key, upsert-per-day
// and the derived submitted/not-submitted partition.
type ReportService struct {
	store    reportStore
	roster   *roster.Roster
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
	cacheTTL time.Duration
}

// ReportServiceParams groups constructor dependencies.
type ReportServiceParams struct {
	Store    reportStore
	Roster   *roster.Roster
	Cache    *CacheService
	Metrics  *MetricsService
	Logger   *zap.Logger
	CacheTTL time.Duration
}

// NewReportService constructs a ReportService.
func NewReportService(params ReportServiceParams) *ReportService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		store:    params.Store,
		roster:   params.Roster,
		cache:    params.Cache,
		metrics:  params.Metrics,
		logger:   logger,
		now:      time.Now,
		cacheTTL: params.CacheTTL,
	}
}

// Students returns the roster in its defined order.
func (s *ReportService) Students() []string {
	return s.roster.Names()
}

// Submit upserts today's report for the student. The business day is
// computed server-side in UTC+8; the caller's clock never decides which
// row is written.
func (s *ReportService) Submit(ctx context.Context, req dto.SubmitReportRequest) (*SubmitResult, error) {
	if req.StudentName == "" || req.WorkDone == "" {
		s.metrics.RecordSubmission("rejected")
		return nil, appErrors.Clone(appErrors.ErrValidation, "student_name 和 work_done 为必填项")
	}
	if !s.roster.Contains(req.StudentName) {
		s.metrics.RecordSubmission("rejected")
		return nil, appErrors.ErrNotOnRoster
	}

	today := worklog.DayKey(s.now())
	report := &models.Report{
		StudentName:  req.StudentName,
		ReportDate:   today,
		WorkDone:     req.WorkDone,
		Problems:     req.Problems,
		PlanTomorrow: req.PlanTomorrow,
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.store.Upsert(ctx, report)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, statusCacheKey(today)); err != nil {
		s.logger.Warn("status cache invalidation failed", zap.String("date", today), zap.Error(err))
	}

	result := &SubmitResult{Created: created, Message: "日报已更新"}
	if created {
		result.Message = "日报提交成功"
		s.metrics.RecordSubmission("created")
	} else {
		s.metrics.RecordSubmission("updated")
	}
	s.logger.Info("report submitted",
		zap.String("student", req.StudentName),
		zap.String("date", today),
		zap.Bool("created", created),
	)
	return result, nil
}

// ListByDate returns all reports for the date (default: today).
func (s *ReportService) ListByDate(ctx context.Context, date string) (*dto.ReportsResponse, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	reports, err := s.store.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return &dto.ReportsResponse{Date: date, Reports: reports}, nil
}

// StudentStatus answers whether one student has submitted for the date.
// A missing report is submitted=false, never an error.
func (s *ReportService) StudentStatus(ctx context.Context, date, student string) (*models.StudentStatus, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	report, err := s.store.Find(ctx, student, date)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return &models.StudentStatus{Submitted: false}, nil
	}
	submittedAt := report.CreatedAt
	return &models.StudentStatus{Submitted: true, SubmittedAt: &submittedAt}, nil
}

// Summary returns the roster partition for the date and whether it came
// from cache.
func (s *ReportService) Summary(ctx context.Context, date string) (*models.StatusSummary, bool, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, false, err
	}

	key := statusCacheKey(date)
	var cached models.StatusSummary
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	names, err := s.store.SubmittedNames(ctx, date)
	if err != nil {
		return nil, false, err
	}

	submitted, notSubmitted := s.roster.Partition(names)
	summary := &models.StatusSummary{
		Date:           date,
		Total:          s.roster.Size(),
		SubmittedCount: len(submitted),
		Submitted:      submitted,
		NotSubmitted:   notSubmitted,
	}

	if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
		s.logger.Warn("status cache write failed", zap.String("date", date), zap.Error(err))
	}
	return summary, false, nil
}

func (s *ReportService) resolveDate(date string) (string, error) {
	if date == "" {
		return worklog.DayKey(s.now()), nil
	}
	if _, err := worklog.ParseDate(date); err != nil {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("日期格式无效: %s", date))
	}
	return date, nil
}

func statusCacheKey(date string) string {
	return "status:" + date
}
