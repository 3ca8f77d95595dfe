// Command labdaily-cli is a terminal client for the lab daily-report
// service. It talks to a running server when one is reachable and falls
// back to an offline demo data source otherwise, so the tool always
// starts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tanlab/labdaily-api/internal/dto"
	"github.com/tanlab/labdaily-api/internal/worklog"
	"github.com/tanlab/labdaily-api/pkg/client"
	"github.com/tanlab/labdaily-api/pkg/config"
	"github.com/tanlab/labdaily-api/pkg/localstore"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := localstore.Open(statePath())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	source := selectSource(ctx, cfg, store, args)

	switch args[0] {
	case "submit":
		return cmdSubmit(ctx, source, store, args[1:])
	case "draft":
		return cmdDraft(store, args[1:])
	case "status":
		return cmdStatus(ctx, source, args[1:])
	case "reports":
		return cmdReports(ctx, source, args[1:])
	case "week":
		return cmdWeek(ctx, source, args[1:])
	case "export":
		return cmdExport(ctx, source, args[1:])
	case "lead":
		return cmdLead(ctx, source, store, args[1:])
	case "students":
		return cmdStudents(ctx, source, store)
	case "roster":
		return cmdRoster(store, args[1:])
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("未知命令: %s", args[0])
	}
}

func usage() {
	fmt.Println(`用法: labdaily-cli <命令> [选项]

命令:
  submit    提交今日日报
  draft     查看本地草稿
  status    查看提交状态
  reports   查看某日的日报
  week      查看本周汇总
  export    导出本周日报 (csv/pdf)
  lead      提交试用意向
  students  查看学生名单
  roster    查看或修改本地学生名单

通用选项 (置于命令之后):
  -demo     离线演示模式
  -date     指定日期 YYYY-MM-DD`)
}

// selectSource picks the data source exactly once: explicit demo flag,
// DEMO_MODE, or an unreachable server all land on the offline source.
// The offline source follows the locally customised roster when one is
// set.
func selectSource(ctx context.Context, cfg *config.Config, store *localstore.Store, args []string) client.DataSource {
	demo := cfg.Demo.Enabled
	for _, arg := range args {
		if arg == "-demo" || arg == "--demo" {
			demo = true
		}
	}
	if demo {
		fmt.Println("(演示模式: 数据不会被保存)")
		return client.NewDemoSourceWithRoster(store.Roster())
	}

	httpSource := client.NewHTTPSource(cfg.Demo.BaseURL)
	if !httpSource.Ping(ctx) {
		fmt.Printf("(无法连接 %s, 切换到演示模式)\n", cfg.Demo.BaseURL)
		return client.NewDemoSourceWithRoster(store.Roster())
	}
	return httpSource
}

func statePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".labdaily.json"
	}
	return filepath.Join(home, ".labdaily", "state.json")
}

func cmdSubmit(ctx context.Context, source client.DataSource, store *localstore.Store, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	student := fs.String("student", "", "学生姓名 (默认上次使用的姓名)")
	tags := fs.String("tags", "", "工作标签, 逗号分隔, 如 实验,数据分析")
	work := fs.String("work", "", "今日工作补充说明")
	problems := fs.String("problems", "", "遇到的问题")
	plan := fs.String("plan", "", "明日计划")
	fromDraft := fs.Bool("from-draft", false, "从本地草稿填充未指定的字段")
	fs.Bool("demo", false, "离线演示模式")
	if err := fs.Parse(args); err != nil {
		return err
	}

	name := strings.TrimSpace(*student)
	if name == "" {
		name = store.LastStudent()
	}
	if name == "" {
		return fmt.Errorf("请用 -student 指定学生姓名")
	}

	today := worklog.Today()
	tagList := splitTags(*tags)
	supplement := *work
	problemText := *problems
	planText := *plan

	if *fromDraft {
		draft, err := store.Draft(name, today)
		if err == nil && draft != nil {
			if len(tagList) == 0 {
				tagList = draft.Tags
			}
			if supplement == "" {
				supplement = draft.Supplement
			}
			if problemText == "" {
				problemText = draft.Problems
			}
			if planText == "" {
				planText = draft.PlanTomorrow
			}
		}
	}

	req := dto.SubmitReportRequest{
		StudentName:  name,
		WorkDone:     worklog.Compose(tagList, supplement),
		Problems:     problemText,
		PlanTomorrow: planText,
	}

	outcome, err := source.Submit(ctx, req)
	if err != nil {
		saveErr := store.SaveDraft(name, today, localstore.Draft{
			Tags:         tagList,
			Supplement:   supplement,
			Problems:     problemText,
			PlanTomorrow: planText,
		})
		if saveErr == nil {
			fmt.Println("(提交失败, 草稿已保存在本地)")
		}
		return err
	}

	if err := store.SetLastStudent(name); err != nil {
		return err
	}
	if err := store.ClearDraft(name, today); err != nil {
		return err
	}
	fmt.Println(outcome.Message)
	return nil
}

func cmdDraft(store *localstore.Store, args []string) error {
	fs := flag.NewFlagSet("draft", flag.ContinueOnError)
	student := fs.String("student", "", "学生姓名 (默认上次使用的姓名)")
	date := fs.String("date", "", "日期 YYYY-MM-DD (默认今天)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	name := strings.TrimSpace(*student)
	if name == "" {
		name = store.LastStudent()
	}
	if name == "" {
		return fmt.Errorf("请用 -student 指定学生姓名")
	}
	day := *date
	if day == "" {
		day = worklog.Today()
	}

	draft, err := store.Draft(name, day)
	if err != nil {
		return err
	}
	if draft == nil {
		fmt.Printf("%s 在 %s 没有草稿\n", name, day)
		return nil
	}
	fmt.Printf("%s %s 的草稿:\n", name, day)
	if len(draft.Tags) > 0 {
		fmt.Println("  标签:", strings.Join(draft.Tags, ", "))
	}
	if draft.Supplement != "" {
		fmt.Println("  工作:", draft.Supplement)
	}
	if draft.Problems != "" {
		fmt.Println("  问题:", draft.Problems)
	}
	if draft.PlanTomorrow != "" {
		fmt.Println("  计划:", draft.PlanTomorrow)
	}
	return nil
}

func cmdStatus(ctx context.Context, source client.DataSource, args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	date := fs.String("date", "", "日期 YYYY-MM-DD (默认今天)")
	student := fs.String("student", "", "只查询单个学生")
	fs.Bool("demo", false, "离线演示模式")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *student != "" {
		status, err := source.StudentStatus(ctx, *date, *student)
		if err != nil {
			return err
		}
		if !status.Submitted {
			fmt.Printf("%s 尚未提交\n", *student)
			return nil
		}
		fmt.Printf("%s 已提交 (%s)\n", *student, status.SubmittedAt.Local().Format("15:04"))
		return nil
	}

	summary, err := source.StatusSummary(ctx, *date)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %d/%d 已提交\n", summary.Date, summary.SubmittedCount, summary.Total)
	if len(summary.Submitted) > 0 {
		fmt.Println("  已提交:", strings.Join(summary.Submitted, ", "))
	}
	if len(summary.NotSubmitted) > 0 {
		fmt.Println("  未提交:", strings.Join(summary.NotSubmitted, ", "))
	}
	return nil
}

func cmdReports(ctx context.Context, source client.DataSource, args []string) error {
	fs := flag.NewFlagSet("reports", flag.ContinueOnError)
	date := fs.String("date", "", "日期 YYYY-MM-DD (默认今天)")
	fs.Bool("demo", false, "离线演示模式")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := source.Reports(ctx, *date)
	if err != nil {
		return err
	}
	fmt.Printf("%s 共 %d 份日报\n", resp.Date, len(resp.Reports))
	for _, report := range resp.Reports {
		tags, supplement := worklog.Parse(report.WorkDone)
		fmt.Printf("\n%s", report.StudentName)
		if len(tags) > 0 {
			fmt.Printf("  [%s]", strings.Join(tags, "] ["))
		}
		fmt.Println()
		if supplement != "" {
			fmt.Println("  工作:", supplement)
		}
		if report.Problems != "" {
			fmt.Println("  问题:", report.Problems)
		}
		if report.PlanTomorrow != "" {
			fmt.Println("  计划:", report.PlanTomorrow)
		}
	}
	return nil
}

func cmdWeek(ctx context.Context, source client.DataSource, args []string) error {
	fs := flag.NewFlagSet("week", flag.ContinueOnError)
	date := fs.String("date", "", "本周任意一天 YYYY-MM-DD (默认今天)")
	fs.Bool("demo", false, "离线演示模式")
	if err := fs.Parse(args); err != nil {
		return err
	}

	digest, err := source.Week(ctx, *date)
	if err != nil {
		return err
	}
	fmt.Printf("%s ~ %s  本周提交率 %d%%\n\n", digest.WeekStart, digest.WeekEnd, digest.WeekRate)
	for _, day := range digest.Days {
		fmt.Printf("  %s %s  %d/%d\n", day.Label, day.Date, day.SubmittedCount, day.Total)
	}
	if len(digest.Students) > 0 {
		fmt.Println()
		for _, student := range digest.Students {
			line := fmt.Sprintf("  %s  %d 天", student.Name, student.DaysSubmitted)
			if len(student.Tags) > 0 {
				line += "  " + strings.Join(student.Tags, ", ")
			}
			fmt.Println(line)
		}
	}
	if len(digest.Problems) > 0 {
		fmt.Println("\n本周问题:")
		for _, problem := range digest.Problems {
			fmt.Printf("  %s %s: %s\n", problem.Date, problem.StudentName, problem.Problems)
		}
	}
	return nil
}

func cmdExport(ctx context.Context, source client.DataSource, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	format := fs.String("format", "csv", "导出格式: csv 或 pdf")
	date := fs.String("date", "", "本周任意一天 YYYY-MM-DD (默认今天)")
	fs.Bool("demo", false, "离线演示模式")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := source.Export(ctx, dto.ExportRequest{Date: *date, Format: *format})
	if err != nil {
		return err
	}
	fmt.Println("下载链接:", resp.URL)
	fmt.Println("有效期至:", resp.ExpiresAt)
	return nil
}

func cmdLead(ctx context.Context, source client.DataSource, store *localstore.Store, args []string) error {
	fs := flag.NewFlagSet("lead", flag.ContinueOnError)
	name := fs.String("name", "", "称呼")
	contact := fs.String("contact", "", "联系方式")
	labSize := fs.String("lab-size", "", "实验室规模")
	fs.Bool("demo", false, "离线演示模式")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *contact == "" {
		return fmt.Errorf("请用 -name 与 -contact 填写称呼和联系方式")
	}

	// flush earlier offline attempts one by one; a lead leaves the
	// queue only once its own delivery succeeded
	remaining := make([]localstore.QueuedLead, 0)
	for _, queued := range store.QueuedLeads() {
		err := source.CreateLead(ctx, dto.CreateLeadRequest{
			Name:    queued.Name,
			Contact: queued.Contact,
			LabSize: queued.LabSize,
		})
		if err != nil {
			remaining = append(remaining, queued)
		}
	}

	req := dto.CreateLeadRequest{Name: *name, Contact: *contact, LabSize: *labSize}
	delivered := source.CreateLead(ctx, req) == nil
	if !delivered {
		remaining = append(remaining, localstore.QueuedLead{
			Name:      *name,
			Contact:   *contact,
			LabSize:   *labSize,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
	if err := store.ReplaceLeadQueue(remaining); err != nil {
		return err
	}
	if !delivered {
		fmt.Println("(暂时无法提交, 已保存在本地, 下次联网后自动重试)")
		return nil
	}
	fmt.Println("已收到, 我们会尽快联系你")
	return nil
}

func cmdStudents(ctx context.Context, source client.DataSource, store *localstore.Store) error {
	if override := store.Roster(); len(override) > 0 {
		for _, name := range override {
			fmt.Println(name)
		}
		fmt.Println("(本地自定义名单, roster -reset 可恢复)")
		return nil
	}

	students, err := source.Students(ctx)
	if err != nil {
		return err
	}
	for _, name := range students {
		fmt.Println(name)
	}
	return nil
}

func cmdRoster(store *localstore.Store, args []string) error {
	fs := flag.NewFlagSet("roster", flag.ContinueOnError)
	set := fs.String("set", "", "设置本地名单, 逗号分隔, 如 张三,李四")
	reset := fs.Bool("reset", false, "清除本地名单, 恢复服务器名单")
	fs.Bool("demo", false, "离线演示模式")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *reset:
		if err := store.ResetRoster(); err != nil {
			return err
		}
		fmt.Println("已恢复服务器名单")
	case *set != "":
		names := splitTags(*set)
		if len(names) == 0 {
			return fmt.Errorf("名单不能为空")
		}
		if err := store.SetRoster(names); err != nil {
			return err
		}
		fmt.Println("本地名单已更新:", strings.Join(names, ", "))
	default:
		override := store.Roster()
		if len(override) == 0 {
			fmt.Println("(未设置本地名单, 使用服务器名单)")
			return nil
		}
		for _, name := range override {
			fmt.Println(name)
		}
	}
	return nil
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
