// Package report writes scored batches to CSV, XLSX, or a terminal table.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/dazhuang0717-violet/communicationscorer/internal/model"
)

var exportHeader = []string{
	"media_name", "url", "total_score", "true_demand", "acquisition_score",
	"volume_total", "km_score", "audience_precision_score", "volume_quality",
	"tier_score", "status", "comment", "detail",
}

func exportRow(r model.ScoreResult) []string {
	return []string{
		r.MediaName,
		r.URL,
		fmt.Sprintf("%.2f", r.TotalScore),
		fmt.Sprintf("%.2f", r.TrueDemand),
		fmt.Sprintf("%.2f", r.AcquisitionScore),
		fmt.Sprintf("%.2f", r.VolumeTotal),
		fmt.Sprintf("%.2f", r.KMScore),
		fmt.Sprintf("%.2f", r.AudiencePrecisionScore),
		fmt.Sprintf("%.1f", r.VolumeQuality),
		fmt.Sprintf("%d", r.TierScore),
		string(r.Status),
		r.Comment,
		r.Detail,
	}
}

// WriteCSV writes results as UTF-8 CSV with a BOM so Excel renders
// Chinese outlet names correctly.
func WriteCSV(w io.Writer, results []model.ScoreResult) error {
	if _, err := w.Write([]byte("\uFEFF")); err != nil {
		return eris.Wrap(err, "report: write BOM")
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(exportHeader); err != nil {
		return eris.Wrap(err, "report: write CSV header")
	}
	for _, r := range results {
		if err := cw.Write(exportRow(r)); err != nil {
			return eris.Wrap(err, "report: write CSV row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush CSV")
}

// WriteXLSX writes results to a single-sheet workbook at path.
func WriteXLSX(path string, results []model.ScoreResult) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Scores")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range exportHeader {
		header.AddCell().Value = h
	}
	for _, r := range results {
		row := sheet.AddRow()
		for _, v := range exportRow(r) {
			row.AddCell().Value = v
		}
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "report: save xlsx %s", path)
	}
	return nil
}

// WriteTable writes a fixed-width table for terminal output.
func WriteTable(w io.Writer, results []model.ScoreResult) error {
	header := fmt.Sprintf("%-30s %6s %6s %6s %6s %-20s\n",
		"Media", "Total", "TD", "Vol", "VQ", "Status")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "report: write table header")
	}

	for _, r := range results {
		line := fmt.Sprintf("%-30s %6.2f %6.2f %6.2f %6.1f %-20s\n",
			clip(r.MediaName, 30), r.TotalScore, r.TrueDemand,
			r.VolumeTotal, r.VolumeQuality, r.Status)
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "report: write table row")
		}
	}
	return nil
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
