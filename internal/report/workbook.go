// Package report renders the pipeline's output artifacts: the summary
// workbook, the mismatch workbook, and the chart images.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/models"
)

// defaultSheet is the sheet excelize creates in every new workbook; it is
// removed once the real sheets exist.
const defaultSheet = "Sheet1"

// WriteSummaryWorkbook writes the combined report: one sheet per snapshot
// with its full contents, plus a flattened key/value Summary sheet.
func WriteSummaryWorkbook(path string, snapshots []*models.Snapshot, metrics []models.SummaryMetric) error {
	f := excelize.NewFile()
	defer f.Close()

	for _, snap := range snapshots {
		if err := writeSnapshotSheet(f, snap); err != nil {
			return err
		}
	}
	if err := writeSummarySheet(f, metrics); err != nil {
		return err
	}

	if err := f.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save summary workbook %s: %w", path, err)
	}
	return nil
}

func writeSnapshotSheet(f *excelize.File, snap *models.Snapshot) error {
	if _, err := f.NewSheet(snap.Table); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", snap.Table, err)
	}

	header := make([]any, 0, len(snap.Columns)+1)
	header = append(header, "property_id")
	for _, col := range snap.Columns {
		header = append(header, col)
	}
	if err := setRow(f, snap.Table, 1, header); err != nil {
		return err
	}

	for i, row := range snap.Rows {
		cells := make([]any, 0, len(row)+1)
		cells = append(cells, snap.IDs[i])
		for _, v := range row {
			cells = append(cells, v)
		}
		if err := setRow(f, snap.Table, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, metrics []models.SummaryMetric) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if err := setRow(f, sheet, 1, []any{"Metric", "Value"}); err != nil {
		return err
	}
	for i, m := range metrics {
		if err := setRow(f, sheet, i+2, []any{m.Name, m.Value}); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d on sheet %s: %w", row, sheet, err)
	}
	return nil
}
