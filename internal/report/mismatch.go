package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/models"
)

// WriteMismatchWorkbook writes the validation findings: one row per
// (table, column) disagreement with sample evidence. Callers only invoke it
// when the report is not clean; a clean pass produces no file.
func WriteMismatchWorkbook(path string, rep *models.MismatchReport) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Mismatches"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	header := []any{
		"Table", "Column", "Total Mismatches",
		"Sample Mismatch Raw", "Sample Mismatch Normalized",
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, finding := range rep.Findings {
		row := []any{
			finding.Table,
			finding.Column,
			finding.Count,
			strings.Join(finding.SampleRaw, "; "),
			strings.Join(finding.SampleNormalized, "; "),
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save mismatch workbook %s: %w", path, err)
	}
	return nil
}
