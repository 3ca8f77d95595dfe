package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tanlab/labdaily-api/internal/dto"
	"github.com/tanlab/labdaily-api/internal/models"
	"github.com/tanlab/labdaily-api/internal/roster"
	"github.com/tanlab/labdaily-api/internal/worklog"
	appErrors "github.com/tanlab/labdaily-api/pkg/errors"
	"github.com/tanlab/labdaily-api/pkg/export"
)

type weekLister interface {
	ListByDate(ctx context.Context, date string) ([]models.Report, error)
}

type exportStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
}

type urlSigner interface {
	Generate(exportID, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (exportID, relPath string, expiresAt time.Time, err error)
}

// csvHeaders is the fixed export column order.
var csvHeaders = []string{"日期", "姓名", "今日工作", "遇到问题", "明日计划", "提交时间"}

// DigestService builds the weekly digest and renders downloadable
// exports of the week's reports.
type DigestService struct {
	store   weekLister
	roster  *roster.Roster
	storage exportStorage
	signer  urlSigner
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
	now     func() time.Time
}

// DigestServiceParams groups constructor dependencies. PDFFont points
// at a TTF used for PDF exports; the reports are in Chinese, so leaving
// it empty disables the pdf format in practice.
type DigestServiceParams struct {
	Store   weekLister
	Roster  *roster.Roster
	Storage exportStorage
	Signer  urlSigner
	PDFFont string
	Logger  *zap.Logger
}

// NewDigestService constructs a DigestService.
func NewDigestService(params DigestServiceParams) *DigestService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DigestService{
		store:   params.Store,
		roster:  params.Roster,
		storage: params.Storage,
		signer:  params.Signer,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(params.PDFFont),
		logger:  logger,
		now:     time.Now,
	}
}

// Weekly aggregates the Monday–Friday reports of the week containing
// date (default: today) into per-day, per-student and per-tag rollups.
func (s *DigestService) Weekly(ctx context.Context, date string) (*dto.WeeklyDigestResponse, error) {
	days, byDay, err := s.collectWeek(ctx, date)
	if err != nil {
		return nil, err
	}

	resp := &dto.WeeklyDigestResponse{
		WeekStart:    days[0].Date,
		WeekEnd:      days[len(days)-1].Date,
		Days:         make([]dto.DayStat, 0, len(days)),
		Students:     nil,
		TagFrequency: nil,
		Problems:     nil,
	}

	type studentAgg struct {
		days     int
		tags     []string
		tagSeen  map[string]struct{}
		problems int
	}
	students := make(map[string]*studentAgg)
	tagCounts := make(map[string]int)
	submittedTotal := 0

	for _, day := range days {
		reports := byDay[day.Date]
		resp.Days = append(resp.Days, dto.DayStat{
			Date:           day.Date,
			Label:          day.Label,
			SubmittedCount: len(reports),
			Total:          s.roster.Size(),
		})
		submittedTotal += len(reports)

		for _, report := range reports {
			agg := students[report.StudentName]
			if agg == nil {
				agg = &studentAgg{tagSeen: map[string]struct{}{}}
				students[report.StudentName] = agg
			}
			agg.days++
			if report.Problems != "" {
				agg.problems++
				resp.Problems = append(resp.Problems, dto.ProblemEntry{
					StudentName: report.StudentName,
					Date:        day.Date,
					Problems:    report.Problems,
				})
			}
			tags, _ := worklog.Parse(report.WorkDone)
			for _, tag := range tags {
				tagCounts[tag]++
				if _, seen := agg.tagSeen[tag]; !seen {
					agg.tagSeen[tag] = struct{}{}
					agg.tags = append(agg.tags, tag)
				}
			}
		}
	}

	for name, agg := range students {
		resp.Students = append(resp.Students, dto.StudentSummary{
			Name:          name,
			DaysSubmitted: agg.days,
			Tags:          agg.tags,
			ProblemDays:   agg.problems,
		})
	}
	sort.Slice(resp.Students, func(i, j int) bool {
		if resp.Students[i].DaysSubmitted != resp.Students[j].DaysSubmitted {
			return resp.Students[i].DaysSubmitted > resp.Students[j].DaysSubmitted
		}
		return resp.Students[i].Name < resp.Students[j].Name
	})

	for tag, count := range tagCounts {
		resp.TagFrequency = append(resp.TagFrequency, dto.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(resp.TagFrequency, func(i, j int) bool {
		if resp.TagFrequency[i].Count != resp.TagFrequency[j].Count {
			return resp.TagFrequency[i].Count > resp.TagFrequency[j].Count
		}
		return resp.TagFrequency[i].Tag < resp.TagFrequency[j].Tag
	})

	if max := len(days) * s.roster.Size(); max > 0 {
		resp.WeekRate = int(float64(submittedTotal)/float64(max)*100 + 0.5)
	}
	return resp, nil
}

// Export renders the week's reports into a CSV or PDF file on disk and
// returns a signed, expiring download link.
func (s *DigestService) Export(ctx context.Context, req dto.ExportRequest) (*dto.ExportResponse, error) {
	days, byDay, err := s.collectWeek(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: csvHeaders}
	for _, day := range days {
		for _, report := range byDay[day.Date] {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"日期":   day.Date,
				"姓名":   report.StudentName,
				"今日工作": report.WorkDone,
				"遇到问题": report.Problems,
				"明日计划": report.PlanTomorrow,
				"提交时间": report.CreatedAt.Format(time.RFC3339),
			})
		}
	}

	var rendered []byte
	switch req.Format {
	case "csv":
		rendered, err = s.csv.Render(dataset)
	case "pdf":
		rendered, err = s.pdf.Render(dataset, fmt.Sprintf("Lab Weekly Report %s", days[0].Date))
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("不支持的导出格式: %s", req.Format))
	}
	if err != nil {
		if errors.Is(err, export.ErrFontRequired) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "PDF 导出需要配置中文字体 (EXPORTS_PDF_FONT)")
		}
		return nil, fmt.Errorf("render %s export: %w", req.Format, err)
	}

	exportID := uuid.NewString()
	relPath := fmt.Sprintf("weekly/%s/%s.%s", days[0].Date, exportID, req.Format)
	if _, err := s.storage.Save(relPath, rendered); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(exportID, relPath)
	if err != nil {
		return nil, fmt.Errorf("sign export url: %w", err)
	}

	s.logger.Info("weekly export rendered",
		zap.String("week_start", days[0].Date),
		zap.String("format", req.Format),
		zap.Int("rows", len(dataset.Rows)),
	)
	return &dto.ExportResponse{
		URL:       "/api/exports/" + token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// OpenExport validates the token and opens the referenced file. The
// returned download name follows the dashboard's 实验室周报 convention.
func (s *DigestService) OpenExport(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrExportGone.Code, appErrors.ErrExportGone.Status, appErrors.ErrExportGone.Message)
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export not found")
	}

	name := fmt.Sprintf("实验室周报_%s%s", s.exportWeekStart(relPath), filepath.Ext(relPath))
	return file, name, nil
}

// exportWeekStart recovers the week's Monday from the stored path,
// which Export lays out as weekly/<monday>/<id>.<format>.
func (s *DigestService) exportWeekStart(relPath string) string {
	parts := strings.Split(relPath, "/")
	if len(parts) == 3 {
		if _, err := worklog.ParseDate(parts[1]); err == nil {
			return parts[1]
		}
	}
	days, _ := worklog.WeekRange(worklog.DayKey(s.now()))
	return days[0].Date
}

func (s *DigestService) collectWeek(ctx context.Context, date string) ([]worklog.Day, map[string][]models.Report, error) {
	if date == "" {
		date = worklog.DayKey(s.now())
	}
	days, err := worklog.WeekRange(date)
	if err != nil {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("日期格式无效: %s", date))
	}

	byDay := make(map[string][]models.Report, len(days))
	for _, day := range days {
		reports, err := s.store.ListByDate(ctx, day.Date)
		if err != nil {
			return nil, nil, err
		}
		byDay[day.Date] = reports
	}
	return days, byDay, nil
}
