package worklog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTagsAndSupplement(t *testing.T) {
	tags, supplement := Parse("[Western Blot] [数据分析] 完成了p-STAT3的WB，条带清晰")
	assert.Equal(t, []string{"Western Blot", "数据分析"}, tags)
	assert.Equal(t, "完成了p-STAT3的WB，条带清晰", supplement)
}

func TestParseTagsOnly(t *testing.T) {
	tags, supplement := Parse("[文献阅读]")
	assert.Equal(t, []string{"文献阅读"}, tags)
	assert.Empty(t, supplement)
}

func TestParsePlainText(t *testing.T) {
	tags, supplement := Parse("跑了一天胶")
	assert.Empty(t, tags)
	assert.Equal(t, "跑了一天胶", supplement)
}

func TestParseEmpty(t *testing.T) {
	tags, supplement := Parse("")
	assert.Empty(t, tags)
	assert.Empty(t, supplement)
}

func TestComposeParseRoundTrip(t *testing.T) {
	cases := []struct {
		tags       []string
		supplement string
	}{
		{[]string{"PCR"}, "ran gel"},
		{[]string{"细胞培养", "PCR"}, "传代HEK293T第18代"},
		{nil, "只有补充说明"},
		{[]string{"动物实验"}, ""},
	}
	for _, tc := range cases {
		composed := Compose(tc.tags, tc.supplement)
		tags, supplement := Parse(composed)
		if len(tc.tags) == 0 {
			assert.Empty(t, tags)
		} else {
			assert.Equal(t, tc.tags, tags)
		}
		assert.Equal(t, tc.supplement, supplement)
	}
}

func TestComposeStripsLiteralBrackets(t *testing.T) {
	composed := Compose([]string{"数据分析"}, "对比了[旧版]流程")
	tags, supplement := Parse(composed)
	assert.Equal(t, []string{"数据分析"}, tags)
	assert.Equal(t, "对比了旧版流程", supplement)
}

func TestWeekRangeStableAcrossWeekdays(t *testing.T) {
	// 2026-08-31 is a Monday
	want := []string{"2026-08-31", "2026-09-01", "2026-09-02", "2026-09-03", "2026-09-04"}

	for _, date := range want {
		days, err := WeekRange(date)
		require.NoError(t, err)
		require.Len(t, days, 5)
		for i, day := range days {
			assert.Equal(t, want[i], day.Date, "anchored at %s", date)
		}
	}

	labels := []string{"周一", "周二", "周三", "周四", "周五"}
	days, err := WeekRange("2026-09-02")
	require.NoError(t, err)
	for i, day := range days {
		assert.Equal(t, labels[i], day.Label)
	}
}

func TestWeekRangeSundayBelongsToEndedWeek(t *testing.T) {
	// 2026-09-06 is a Sunday; its week started 2026-08-31
	days, err := WeekRange("2026-09-06")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-31", days[0].Date)

	// Saturday likewise
	days, err = WeekRange("2026-09-05")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-31", days[0].Date)
}

func TestWeekRangeRejectsBadDate(t *testing.T) {
	_, err := WeekRange("2026/09/01")
	require.Error(t, err)
}

func TestIsWeekend(t *testing.T) {
	weekend, err := IsWeekend("2026-09-05")
	require.NoError(t, err)
	assert.True(t, weekend)

	weekend, err = IsWeekend("2026-09-01")
	require.NoError(t, err)
	assert.False(t, weekend)
}
