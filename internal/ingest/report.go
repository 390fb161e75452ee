// Package ingest loads coverage reports and briefing documents from disk.
package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/dazhuang0717-violet/communicationscorer/internal/model"
	"github.com/dazhuang0717-violet/communicationscorer/internal/numfmt"
)

// Column aliases are matched against lowercased, trimmed header cells.
// Chinese headers come from agency coverage exports; English ones from
// manually maintained sheets.
var (
	mediaAliases        = []string{"媒体名称", "媒体", "media", "media name", "outlet", "publication"}
	urlAliases          = []string{"url", "link", "链接", "文章链接"}
	viewsAliases        = []string{"浏览量", "阅读量", "views", "impressions"}
	interactionsAliases = []string{"互动量", "互动数", "interactions", "engagements"}
	titleAliases        = []string{"标题", "title", "headline"}
	bodyAliases         = []string{"正文", "全文", "content", "body", "full text"}

	// When no single interactions column exists, these are summed.
	likesAliases    = []string{"点赞", "点赞数", "likes"}
	commentsAliases = []string{"评论", "评论数", "comments"}
	sharesAliases   = []string{"分享", "转发", "shares", "reposts"}
)

// ParseReport reads a coverage report from a CSV or XLSX file and
// returns one item per data row. Rows whose media name and URL are both
// empty are skipped.
func ParseReport(path string) ([]model.MediaItem, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		return nil, eris.Errorf("ingest: unsupported report format %q (want .csv or .xlsx)", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, eris.New("ingest: report is empty")
	}

	cols, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var items []model.MediaItem
	for _, row := range rows[1:] {
		item := model.MediaItem{
			MediaName:    cols.get(row, cols.media),
			SourceURL:    cols.get(row, cols.url),
			Title:        cols.get(row, cols.title),
			RawText:      cols.get(row, cols.body),
			Views:        cols.get(row, cols.views),
			Interactions: cols.interactionsOf(row),
		}
		if item.MediaName == "" && item.SourceURL == "" {
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

// columns holds resolved header indexes. Optional columns are -1.
type columns struct {
	media, url, views, interactions int
	title, body                     int
	likes, comments, shares         int
}

func (c columns) get(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// interactionsOf returns the interactions cell, or the sum of the
// likes, comments, and shares cells when no combined column exists.
func (c columns) interactionsOf(row []string) string {
	if c.interactions >= 0 {
		return c.get(row, c.interactions)
	}

	total := numfmt.ParseCount(c.get(row, c.likes)) +
		numfmt.ParseCount(c.get(row, c.comments)) +
		numfmt.ParseCount(c.get(row, c.shares))
	return numfmt.FormatCount(total)
}

func resolveColumns(header []string) (columns, error) {
	cols := columns{
		media:        findColumn(header, mediaAliases),
		url:          findColumn(header, urlAliases),
		views:        findColumn(header, viewsAliases),
		interactions: findColumn(header, interactionsAliases),
		title:        findColumn(header, titleAliases),
		body:         findColumn(header, bodyAliases),
		likes:        findColumn(header, likesAliases),
		comments:     findColumn(header, commentsAliases),
		shares:       findColumn(header, sharesAliases),
	}

	var missing []string
	if cols.media < 0 {
		missing = append(missing, "media name")
	}
	if cols.url < 0 {
		missing = append(missing, "url")
	}
	if cols.views < 0 {
		missing = append(missing, "views")
	}
	if cols.interactions < 0 && cols.likes < 0 && cols.comments < 0 && cols.shares < 0 {
		missing = append(missing, "interactions")
	}
	if len(missing) > 0 {
		return cols, eris.Errorf("ingest: report is missing required columns: %s", strings.Join(missing, ", "))
	}

	return cols, nil
}

func findColumn(header []string, aliases []string) int {
	for i, cell := range header {
		cell = strings.ToLower(strings.TrimSpace(stripBOM(cell)))
		for _, alias := range aliases {
			if cell == alias {
				return i
			}
		}
	}
	return -1
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open csv")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable fields

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "ingest: read csv row")
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("ingest: xlsx file has no sheets")
	}

	sheet := f.Sheets[0]
	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
