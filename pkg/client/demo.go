package client

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/tanlab/labdaily-api/internal/dto"
	"github.com/tanlab/labdaily-api/internal/models"
	"github.com/tanlab/labdaily-api/internal/roster"
	"github.com/tanlab/labdaily-api/internal/worklog"
)

// demoStudents is the demo lab's roster.
var demoStudents = []string{"陈思远", "刘雨桐", "张明阳", "王子涵", "李晓萱", "赵天宇"}

// DemoSource serves fixture data entirely offline. Today's reports are
// fixed and past days are generated from a per-date seed, so repeated
// runs show the same history.
type DemoSource struct {
	roster  *roster.Roster
	reports map[string]*models.Report // keyed student|date
	leads   []dto.CreateLeadRequest
	nextID  int64
	now     func() time.Time
}

// NewDemoSource constructs a DemoSource pre-seeded with today's fixture
// reports.
func NewDemoSource() *DemoSource {
	return NewDemoSourceWithRoster(nil)
}

// NewDemoSourceWithRoster constructs a DemoSource serving the given
// roster. An empty roster falls back to the demo lab's students.
func NewDemoSourceWithRoster(names []string) *DemoSource {
	if len(names) == 0 {
		names = demoStudents
	}
	src := &DemoSource{
		roster:  roster.New(names),
		reports: map[string]*models.Report{},
		now:     time.Now,
	}
	src.seedToday()
	return src
}

func (s *DemoSource) seedToday() {
	today := worklog.DayKey(s.now())
	fixtures := []models.Report{
		{
			StudentName:  "陈思远",
			WorkDone:     "[Western Blot] [数据分析] 完成了p-STAT3的WB，三次重复均一致，条带清晰",
			Problems:     "二抗孵育时间可能偏长，背景稍高，下次减少到45min试试",
			PlanTomorrow: "跑ELISA验证细胞因子水平",
			CreatedAt:    s.now().Add(-3 * time.Hour),
		},
		{
			StudentName:  "刘雨桐",
			WorkDone:     "[细胞培养] [PCR] 传代HEK293T第18代，同时做了IL-6引物的RT-qPCR",
			PlanTomorrow: "细胞转染实验，用lipofectamine 3000",
			CreatedAt:    s.now().Add(-4 * time.Hour),
		},
		{
			StudentName:  "张明阳",
			WorkDone:     "[文献阅读] [写论文] 读了3篇关于肿瘤微环境中巨噬细胞极化的综述，整理了Discussion部分的逻辑框架",
			Problems:     "Discussion第二段关于M1/M2转化的论证逻辑不太顺，需要老师指导一下",
			PlanTomorrow: "继续修改Discussion，争取写完初稿",
			CreatedAt:    s.now().Add(-2 * time.Hour),
		},
		{
			StudentName:  "王子涵",
			WorkDone:     "[动物实验] [样本处理] 小鼠给药第7天，取血清和肝脏组织，已-80冻存",
			PlanTomorrow: "组织切片H&E染色",
			CreatedAt:    s.now().Add(-5 * time.Hour),
		},
	}
	for i := range fixtures {
		report := fixtures[i]
		if !s.roster.Contains(report.StudentName) {
			continue
		}
		report.ID = s.nextID + 1
		s.nextID++
		report.ReportDate = today
		s.reports[report.StudentName+"|"+today] = &report
	}
}

func (s *DemoSource) Students(_ context.Context) ([]string, error) {
	return s.roster.Names(), nil
}

func (s *DemoSource) Submit(_ context.Context, req dto.SubmitReportRequest) (*SubmitOutcome, error) {
	if req.StudentName == "" || req.WorkDone == "" {
		return nil, fmt.Errorf("student_name 和 work_done 为必填项")
	}
	if !s.roster.Contains(req.StudentName) {
		return nil, fmt.Errorf("学生不在名单中")
	}

	today := worklog.DayKey(s.now())
	key := req.StudentName + "|" + today
	_, exists := s.reports[key]
	s.nextID++
	s.reports[key] = &models.Report{
		ID:           s.nextID,
		StudentName:  req.StudentName,
		ReportDate:   today,
		WorkDone:     req.WorkDone,
		Problems:     req.Problems,
		PlanTomorrow: req.PlanTomorrow,
		CreatedAt:    s.now(),
	}
	if exists {
		return &SubmitOutcome{Created: false, Message: "日报已更新"}, nil
	}
	return &SubmitOutcome{Created: true, Message: "日报提交成功"}, nil
}

func (s *DemoSource) Reports(_ context.Context, date string) (*dto.ReportsResponse, error) {
	if date == "" {
		date = worklog.DayKey(s.now())
	}
	reports := make([]models.Report, 0)
	for _, report := range s.reports {
		if report.ReportDate == date {
			reports = append(reports, *report)
		}
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return &dto.ReportsResponse{Date: date, Reports: reports}, nil
}

func (s *DemoSource) StudentStatus(_ context.Context, date, student string) (*models.StudentStatus, error) {
	if date == "" {
		date = worklog.DayKey(s.now())
	}
	report, ok := s.reports[student+"|"+date]
	if !ok {
		return &models.StudentStatus{Submitted: false}, nil
	}
	submittedAt := report.CreatedAt
	return &models.StudentStatus{Submitted: true, SubmittedAt: &submittedAt}, nil
}

func (s *DemoSource) StatusSummary(_ context.Context, date string) (*models.StatusSummary, error) {
	today := worklog.DayKey(s.now())
	if date == "" {
		date = today
	}
	if date == today {
		return s.liveSummary(date), nil
	}
	return s.generatedSummary(date), nil
}

// liveSummary partitions the roster from the in-memory reports, so a
// demo submission immediately shows up in status.
func (s *DemoSource) liveSummary(date string) *models.StatusSummary {
	submitted := make([]string, 0)
	for _, name := range s.roster.Names() {
		if _, ok := s.reports[name+"|"+date]; ok {
			submitted = append(submitted, name)
		}
	}
	kept, notSubmitted := s.roster.Partition(submitted)
	return &models.StatusSummary{
		Date:           date,
		Total:          s.roster.Size(),
		SubmittedCount: len(kept),
		Submitted:      kept,
		NotSubmitted:   notSubmitted,
	}
}

// generatedSummary fabricates a plausible partition for a past day. The
// generator is seeded from the date alone, so the same date always
// produces the same partition.
func (s *DemoSource) generatedSummary(date string) *models.StatusSummary {
	weekend, err := worklog.IsWeekend(date)
	if err != nil || weekend {
		return &models.StatusSummary{
			Date:         date,
			Total:        s.roster.Size(),
			Submitted:    []string{},
			NotSubmitted: s.roster.Names(),
		}
	}

	var seed int64
	for _, b := range []byte(date) {
		seed = seed*31 + int64(b)
	}
	rng := rand.New(rand.NewSource(seed))

	names := s.roster.Names()
	rng.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})
	count := 4 + rng.Intn(3)
	if count > len(names) {
		count = len(names)
	}
	return &models.StatusSummary{
		Date:           date,
		Total:          s.roster.Size(),
		SubmittedCount: count,
		Submitted:      names[:count],
		NotSubmitted:   names[count:],
	}
}

func (s *DemoSource) WeekStatus(ctx context.Context, date string) ([]models.StatusSummary, error) {
	if date == "" {
		date = worklog.DayKey(s.now())
	}
	days, err := worklog.WeekRange(date)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.StatusSummary, 0, len(days))
	for _, day := range days {
		summary, err := s.StatusSummary(ctx, day.Date)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

func (s *DemoSource) Week(ctx context.Context, date string) (*dto.WeeklyDigestResponse, error) {
	summaries, err := s.WeekStatus(ctx, date)
	if err != nil {
		return nil, err
	}
	days, _ := worklog.WeekRange(summaries[0].Date)

	resp := &dto.WeeklyDigestResponse{
		WeekStart: days[0].Date,
		WeekEnd:   days[len(days)-1].Date,
	}
	submittedTotal := 0
	counts := map[string]int{}
	for i, summary := range summaries {
		resp.Days = append(resp.Days, dto.DayStat{
			Date:           summary.Date,
			Label:          days[i].Label,
			SubmittedCount: summary.SubmittedCount,
			Total:          summary.Total,
		})
		submittedTotal += summary.SubmittedCount
		for _, name := range summary.Submitted {
			counts[name]++
		}
	}
	for _, name := range s.roster.Names() {
		if counts[name] == 0 {
			continue
		}
		resp.Students = append(resp.Students, dto.StudentSummary{Name: name, DaysSubmitted: counts[name]})
	}
	sort.Slice(resp.Students, func(i, j int) bool {
		if resp.Students[i].DaysSubmitted != resp.Students[j].DaysSubmitted {
			return resp.Students[i].DaysSubmitted > resp.Students[j].DaysSubmitted
		}
		return resp.Students[i].Name < resp.Students[j].Name
	})
	if max := len(summaries) * s.roster.Size(); max > 0 {
		resp.WeekRate = int(float64(submittedTotal)/float64(max)*100 + 0.5)
	}
	return resp, nil
}

func (s *DemoSource) Export(_ context.Context, _ dto.ExportRequest) (*dto.ExportResponse, error) {
	return nil, fmt.Errorf("演示模式不支持导出")
}

// CreateLead accepts and remembers the lead in memory only.
func (s *DemoSource) CreateLead(_ context.Context, req dto.CreateLeadRequest) error {
	s.leads = append(s.leads, req)
	return nil
}
