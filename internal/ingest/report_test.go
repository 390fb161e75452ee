package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseReportCSVChineseHeaders(t *testing.T) {
	csv := "\uFEFF媒体名称,URL,浏览量,互动量\n" +
		"新华社,https://example.com/a,3万,1200\n" +
		"Some Blog,https://example.com/b,5k,80\n"
	path := writeTempFile(t, "report.csv", csv)

	items, err := ParseReport(path)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "新华社", items[0].MediaName)
	assert.Equal(t, "https://example.com/a", items[0].SourceURL)
	assert.Equal(t, "3万", items[0].Views)
	assert.Equal(t, "1200", items[0].Interactions)
	assert.Equal(t, "Some Blog", items[1].MediaName)
}

func TestParseReportCSVEnglishHeadersWithOptional(t *testing.T) {
	csv := "Outlet,Link,Views,Engagements,Title,Body\n" +
		"Daily News,https://example.com/x,1000,50,Launch piece,Full article text here\n"
	path := writeTempFile(t, "report.csv", csv)

	items, err := ParseReport(path)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "Daily News", items[0].MediaName)
	assert.Equal(t, "Launch piece", items[0].Title)
	assert.Equal(t, "Full article text here", items[0].RawText)
}

func TestParseReportSumsEngagementParts(t *testing.T) {
	csv := "媒体名称,URL,浏览量,点赞,评论,转发\n" +
		"Outlet,https://example.com/y,1000,30,10,5\n"
	path := writeTempFile(t, "report.csv", csv)

	items, err := ParseReport(path)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "45", items[0].Interactions)
}

func TestParseReportSkipsBlankRows(t *testing.T) {
	csv := "media,url,views,interactions\n" +
		"Outlet,https://example.com/z,1,1\n" +
		",,,\n"
	path := writeTempFile(t, "report.csv", csv)

	items, err := ParseReport(path)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestParseReportMissingColumns(t *testing.T) {
	path := writeTempFile(t, "report.csv", "outlet,headline\nDaily,Launch\n")

	_, err := ParseReport(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "url")
	assert.Contains(t, err.Error(), "views")
	assert.Contains(t, err.Error(), "interactions")
}

func TestParseReportUnsupportedFormat(t *testing.T) {
	path := writeTempFile(t, "report.txt", "whatever")

	_, err := ParseReport(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}

func TestParseReportEmptyCSV(t *testing.T) {
	path := writeTempFile(t, "report.csv", "")

	_, err := ParseReport(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestParseReportXLSX(t *testing.T) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sheet1")
	require.NoError(t, err)

	for _, rowVals := range [][]string{
		{"媒体名称", "URL", "浏览量", "互动量"},
		{"人民日报", "https://example.com/p", "12万", "5000"},
	} {
		row := sheet.AddRow()
		for _, v := range rowVals {
			row.AddCell().Value = v
		}
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, file.Save(path))

	items, err := ParseReport(path)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "人民日报", items[0].MediaName)
	assert.Equal(t, "12万", items[0].Views)
	assert.Equal(t, "5000", items[0].Interactions)
}

func TestParseReportXLSXMissing(t *testing.T) {
	_, err := ParseReport(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}
