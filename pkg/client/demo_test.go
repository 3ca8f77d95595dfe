package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanlab/labdaily-api/internal/dto"
)

func TestDemoSeedsTodayFixtures(t *testing.T) {
	src := NewDemoSource()

	students, err := src.Students(context.Background())
	require.NoError(t, err)
	assert.Len(t, students, 6)
	assert.Equal(t, "陈思远", students[0])

	resp, err := src.Reports(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, resp.Reports, 4)

	summary, err := src.StatusSummary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 4, summary.SubmittedCount)
	assert.Contains(t, summary.NotSubmitted, "李晓萱")
	assert.Contains(t, summary.NotSubmitted, "赵天宇")
}

func TestDemoHonorsCustomRoster(t *testing.T) {
	src := NewDemoSourceWithRoster([]string{"张明阳", "甲"})

	students, err := src.Students(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"张明阳", "甲"}, students)

	// only fixtures for roster members are seeded
	resp, err := src.Reports(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, resp.Reports, 1)
	assert.Equal(t, "张明阳", resp.Reports[0].StudentName)

	_, err = src.Submit(context.Background(), dto.SubmitReportRequest{
		StudentName: "陈思远",
		WorkDone:    "[实验] 测试",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "不在名单中")

	_, err = src.Submit(context.Background(), dto.SubmitReportRequest{
		StudentName: "甲",
		WorkDone:    "[实验] 测试",
	})
	require.NoError(t, err)
}

func TestDemoSubmitUpdatesStatus(t *testing.T) {
	src := NewDemoSource()

	outcome, err := src.Submit(context.Background(), dto.SubmitReportRequest{
		StudentName: "李晓萱",
		WorkDone:    "[细胞培养] 换液",
	})
	require.NoError(t, err)
	assert.True(t, outcome.Created)
	assert.Equal(t, "日报提交成功", outcome.Message)

	summary, err := src.StatusSummary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 5, summary.SubmittedCount)
	assert.NotContains(t, summary.NotSubmitted, "李晓萱")

	outcome, err = src.Submit(context.Background(), dto.SubmitReportRequest{
		StudentName: "李晓萱",
		WorkDone:    "[细胞培养] 换液，补做计数",
	})
	require.NoError(t, err)
	assert.False(t, outcome.Created)
	assert.Equal(t, "日报已更新", outcome.Message)
}

func TestDemoRejectsUnknownStudent(t *testing.T) {
	src := NewDemoSource()

	_, err := src.Submit(context.Background(), dto.SubmitReportRequest{
		StudentName: "路人甲",
		WorkDone:    "随便写写",
	})
	require.Error(t, err)
	assert.Equal(t, "学生不在名单中", err.Error())
}

func TestDemoPastDaysAreDeterministic(t *testing.T) {
	src := NewDemoSource()

	first, err := src.StatusSummary(context.Background(), "2026-08-25")
	require.NoError(t, err)
	second, err := src.StatusSummary(context.Background(), "2026-08-25")
	require.NoError(t, err)

	assert.Equal(t, first.Submitted, second.Submitted)
	assert.Equal(t, first.NotSubmitted, second.NotSubmitted)
	assert.GreaterOrEqual(t, first.SubmittedCount, 4)
	assert.LessOrEqual(t, first.SubmittedCount, 6)
}

func TestDemoWeekendsAreEmpty(t *testing.T) {
	src := NewDemoSource()

	// 2026-08-29 is a Saturday
	summary, err := src.StatusSummary(context.Background(), "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.SubmittedCount)
	assert.Len(t, summary.NotSubmitted, 6)
}

func TestDemoWeekDigest(t *testing.T) {
	src := NewDemoSource()

	digest, err := src.Week(context.Background(), "2026-08-25")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-24", digest.WeekStart)
	assert.Equal(t, "2026-08-28", digest.WeekEnd)
	require.Len(t, digest.Days, 5)
	assert.Positive(t, digest.WeekRate)
}
