package export

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unicodeFontCandidates are common system locations of CJK-capable
// TTFs. Collections (.ttc) are excluded; the renderer wants a plain TTF.
var unicodeFontCandidates = []string{
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/truetype/unifont/unifont.ttf",
	"/usr/share/fonts/noto/NotoSansSC-Regular.ttf",
}

func TestPDFExporterRejectsEmptyHeaders(t *testing.T) {
	_, err := NewPDFExporter("").Render(Dataset{}, "")
	require.Error(t, err)
}

func TestPDFExporterRendersLatinTable(t *testing.T) {
	out, err := NewPDFExporter("").Render(Dataset{
		Headers: []string{"date", "name", "work"},
		Rows: []map[string]string{
			{"date": "2026-08-31", "name": "alice", "work": "western blot"},
		},
	}, "Weekly Summary 2026-08-31")
	require.NoError(t, err)

	// the content stream is uncompressed, so the cell text is visible
	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, "%PDF"))
	assert.Contains(t, doc, "Weekly Summary 2026-08-31")
	assert.Contains(t, doc, "western blot")
}

func TestPDFExporterRefusesCJKWithoutFont(t *testing.T) {
	_, err := NewPDFExporter("").Render(Dataset{
		Headers: []string{"姓名"},
		Rows:    []map[string]string{{"姓名": "陈思远"}},
	}, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFontRequired))
}

func TestPDFExporterFailsOnMissingFontFile(t *testing.T) {
	_, err := NewPDFExporter("/nonexistent/font.ttf").Render(Dataset{
		Headers: []string{"name"},
	}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load pdf font")
}

func TestPDFExporterRendersCJKWithFont(t *testing.T) {
	fontPath := ""
	for _, candidate := range unicodeFontCandidates {
		if _, err := os.Stat(candidate); err == nil {
			fontPath = candidate
			break
		}
	}
	if fontPath == "" {
		t.Skip("no CJK-capable TTF available on this machine")
	}

	out, err := NewPDFExporter(fontPath).Render(Dataset{
		Headers: []string{"姓名", "今日工作"},
		Rows:    []map[string]string{{"姓名": "陈思远", "今日工作": "完成WB"}},
	}, "实验室周报")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}
