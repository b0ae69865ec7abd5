package services

import (
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/logger"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/models"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/schema"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/transform"
)

// maxMismatchSamples caps how many disagreeing pairs are captured per column
// as evidence in the report.
const maxMismatchSamples = 5

// ValidationService defines the reconciliation operation.
type ValidationService interface {
	// Validate recomputes canonical values from the raw extract and diffs
	// them against the persisted snapshots, column by column. It never
	// modifies anything; disagreements are findings, not errors.
	Validate(raw *models.RawExtract, snapshots map[string]*models.Snapshot) *models.MismatchReport
}

// validationService is the concrete implementation of ValidationService.
type validationService struct {
	log *logger.Logger
}

// NewValidationService creates a new instance of ValidationService.
func NewValidationService(log *logger.Logger) ValidationService {
	return &validationService{log: log.WithComponent("validator")}
}

// Validate walks the schema partition, the same column-ownership table the
// transformer loads from, so a column can never be loaded but silently
// skipped here.
func (s *validationService) Validate(raw *models.RawExtract, snapshots map[string]*models.Snapshot) *models.MismatchReport {
	report := &models.MismatchReport{}

	for _, table := range schema.TableOrder {
		snap := snapshots[table]
		if snap == nil {
			s.log.Warn("Snapshot missing, table skipped", map[string]interface{}{
				"table": table,
			})
			continue
		}

		// Align on identity, not on file row order.
		snap.SortByID()

		if snap.Len() != len(raw.Records) {
			s.log.Warn("Row count differs between raw extract and snapshot", map[string]interface{}{
				"table":         table,
				"raw_rows":      len(raw.Records),
				"snapshot_rows": snap.Len(),
			})
		}

		for _, col := range schema.Columns(table) {
			if !raw.HasColumn(col) {
				s.log.Warn("Column absent from raw extract, skipped", map[string]interface{}{
					"table":  table,
					"column": col,
				})
				continue
			}
			persisted, ok := snap.Column(col)
			if !ok {
				s.log.Warn("Column missing in snapshot, skipped", map[string]interface{}{
					"table":  table,
					"column": col,
				})
				continue
			}

			if finding := s.compareColumn(table, col, raw.Records, persisted); finding != nil {
				report.Findings = append(report.Findings, *finding)
			}
		}
	}

	if report.Clean() {
		s.log.Info("All normalized snapshots match the raw extract", nil)
	} else {
		s.log.Warn("Validation found mismatching columns", map[string]interface{}{
			"columns": len(report.Findings),
		})
	}
	return report
}

// compareColumn canonicalizes both series through the shared canonicalizer
// and counts element-wise disagreements. Returns nil on full agreement.
func (s *validationService) compareColumn(table, col string, records []models.RawRecord, persisted []string) *models.ColumnMismatch {
	n := len(records)
	if len(persisted) < n {
		n = len(persisted)
	}

	finding := models.ColumnMismatch{Table: table, Column: col}
	for i := 0; i < n; i++ {
		rawToken := transform.CanonicalizeCell(records[i].Value(col))
		persistedToken := transform.Canonicalize(persisted[i])
		if rawToken == persistedToken {
			continue
		}
		finding.Count++
		if len(finding.SampleRaw) < maxMismatchSamples {
			finding.SampleRaw = append(finding.SampleRaw, rawToken)
			finding.SampleNormalized = append(finding.SampleNormalized, persistedToken)
		}
	}

	if finding.Count == 0 {
		return nil
	}
	s.log.Warn("Column mismatch", map[string]interface{}{
		"table":      table,
		"column":     col,
		"mismatches": finding.Count,
	})
	return &finding
}
