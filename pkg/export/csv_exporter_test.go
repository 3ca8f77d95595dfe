package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRejectsEmptyHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestCSVExporterStartsWithBOM(t *testing.T) {
	out, err := NewCSVExporter().Render(Dataset{Headers: []string{"日期", "姓名"}})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, out[:3])
	assert.Equal(t, `"日期","姓名"`, string(out[3:]))
}

func TestCSVExporterQuotesAndDoublesQuotes(t *testing.T) {
	out, err := NewCSVExporter().Render(Dataset{
		Headers: []string{"姓名", "今日工作"},
		Rows: []map[string]string{
			{"姓名": "陈思远", "今日工作": `完成了"p-STAT3"的WB, 条带清晰`},
			{"姓名": "刘雨桐", "今日工作": "传代HEK293T"},
		},
	})
	require.NoError(t, err)

	lines := strings.Split(string(out[3:]), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"陈思远","完成了""p-STAT3""的WB, 条带清晰"`, lines[1])
	assert.Equal(t, `"刘雨桐","传代HEK293T"`, lines[2])
}

func TestCSVExporterMissingCellRendersEmptyQuoted(t *testing.T) {
	out, err := NewCSVExporter().Render(Dataset{
		Headers: []string{"a", "b"},
		Rows:    []map[string]string{{"a": "x"}},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(out), `"x",""`))
}
