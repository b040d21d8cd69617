// Package report merges per-folder results into the global datasets and
// serializes them to spreadsheet form.
package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mqzhang/stabwatch/internal/aggregate"
	"github.com/mqzhang/stabwatch/internal/model"
	"github.com/mqzhang/stabwatch/internal/warn"
)

// Summary holds the warning counts shown in the run report.
type Summary struct {
	Overdue int `json:"overdue"`
	Near    int `json:"near"`
	Total   int `json:"total"`
}

// Merge concatenates the datasets of successful folders into one global
// dataset with column-union semantics. Folders without data contribute
// nothing; an all-empty run yields an empty dataset, not an error.
func Merge(reports []aggregate.FolderReport) *model.Dataset {
	merged := model.NewDataset()
	for _, r := range reports {
		if r.Dataset != nil {
			merged.Merge(r.Dataset)
		}
	}
	return merged
}

// WarningDataset converts warning rows to tabular form: the source columns
// (in the supplied order) followed by the computed elapsed_days,
// remaining_days and status columns.
func WarningDataset(columns []string, rows []warn.WarningRow) *model.Dataset {
	ds := model.NewDataset()
	if len(rows) == 0 {
		return ds
	}

	// Register columns up front so the computed ones land after the source
	// columns in a stable order.
	ds.Columns = append(ds.Columns, columns...)
	computed := []string{model.ColumnElapsedDays, model.ColumnRemainingDays, model.ColumnStatus}
	for _, c := range computed {
		if !ds.HasColumn(c) {
			ds.Columns = append(ds.Columns, c)
		}
	}

	for _, wr := range rows {
		row := wr.Row.Clone()
		row[model.ColumnElapsedDays] = strconv.Itoa(wr.ElapsedDays)
		row[model.ColumnRemainingDays] = strconv.Itoa(wr.RemainingDays)
		row[model.ColumnStatus] = wr.Status.Icon() + " " + wr.Status.Display()
		ds.AppendRow(row, ds.Columns)
	}
	return ds
}

// Summarize counts warning rows by status. All counts are zero for an
// empty input; that is the normal empty-state, not an error.
func Summarize(rows []warn.WarningRow) Summary {
	var s Summary
	for _, wr := range rows {
		switch wr.Status {
		case model.StatusOverdue:
			s.Overdue++
		case model.StatusNear:
			s.Near++
		}
	}
	s.Total = len(rows)
	return s
}

// Workbook serializes the dataset as a single-sheet xlsx byte stream. The
// column order of the dataset becomes the header row.
func Workbook(ds *model.Dataset) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	const sheet = "Sheet1"

	header := make([]interface{}, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i] = c
	}
	if len(header) > 0 {
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return nil, fmt.Errorf("write header row: %w", err)
		}
	}

	for i, row := range ds.Rows {
		values := make([]interface{}, len(ds.Columns))
		for j, c := range ds.Columns {
			values[j] = row[c]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ArtifactName builds a timestamped artifact file name, e.g.
// merged_20240131_154500.xlsx.
func ArtifactName(prefix string, ts time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, ts.Format("20060102_150405"))
}
