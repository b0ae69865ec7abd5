package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/logger"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/models"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/schema"
)

// rawExtractFor builds a raw extract exposing exactly the given columns.
func rawExtractFor(columns []string, rows ...map[string]string) *models.RawExtract {
	extract := &models.RawExtract{Columns: columns}
	for _, row := range rows {
		rec := models.RawRecord{}
		for col, val := range row {
			v := val
			rec[col] = &v
		}
		extract.Records = append(extract.Records, rec)
	}
	return extract
}

func hoaSnapshot(ids []int64, flags []string) *models.Snapshot {
	rows := make([][]string, len(flags))
	for i, f := range flags {
		rows[i] = []string{"", f}
	}
	return &models.Snapshot{
		Table:   schema.TableHOA,
		Columns: []string{"HOA", "HOA_Flag"},
		IDs:     ids,
		Rows:    rows,
	}
}

func TestValidate_CleanPass(t *testing.T) {
	service := NewValidationService(logger.New("test"))

	raw := rawExtractFor([]string{"HOA_Flag"},
		map[string]string{"HOA_Flag": "TRUE"},
		map[string]string{"HOA_Flag": "no"},
	)
	snapshots := map[string]*models.Snapshot{
		schema.TableHOA: hoaSnapshot([]int64{1, 2}, []string{"1", "0"}),
	}

	report := service.Validate(raw, snapshots)

	assert.True(t, report.Clean())
}

func TestValidate_DetectsMismatch(t *testing.T) {
	service := NewValidationService(logger.New("test"))

	raw := rawExtractFor([]string{"HOA_Flag"},
		map[string]string{"HOA_Flag": "yes"},
		map[string]string{"HOA_Flag": "yes"},
		map[string]string{"HOA_Flag": "no"},
	)
	// Second and third persisted values disagree with the raw extract.
	snapshots := map[string]*models.Snapshot{
		schema.TableHOA: hoaSnapshot([]int64{1, 2, 3}, []string{"1", "0", "1"}),
	}

	report := service.Validate(raw, snapshots)

	require.False(t, report.Clean())
	require.Len(t, report.Findings, 1)

	finding := report.Findings[0]
	assert.Equal(t, schema.TableHOA, finding.Table)
	assert.Equal(t, "HOA_Flag", finding.Column)
	assert.Equal(t, 2, finding.Count)
	assert.Equal(t, []string{"1", "0"}, finding.SampleRaw)
	assert.Equal(t, []string{"0", "1"}, finding.SampleNormalized)
}

func TestValidate_SampleCapAtFive(t *testing.T) {
	service := NewValidationService(logger.New("test"))

	var rows []map[string]string
	var flags []string
	var ids []int64
	for i := 0; i < 8; i++ {
		rows = append(rows, map[string]string{"HOA_Flag": "yes"})
		flags = append(flags, "0")
		ids = append(ids, int64(i+1))
	}
	raw := rawExtractFor([]string{"HOA_Flag"}, rows...)
	snapshots := map[string]*models.Snapshot{
		schema.TableHOA: hoaSnapshot(ids, flags),
	}

	report := service.Validate(raw, snapshots)

	require.Len(t, report.Findings, 1)
	assert.Equal(t, 8, report.Findings[0].Count)
	assert.Len(t, report.Findings[0].SampleRaw, 5)
	assert.Len(t, report.Findings[0].SampleNormalized, 5)
}

func TestValidate_AlignsSnapshotByIdentity(t *testing.T) {
	service := NewValidationService(logger.New("test"))

	raw := rawExtractFor([]string{"HOA_Flag"},
		map[string]string{"HOA_Flag": "yes"},
		map[string]string{"HOA_Flag": "no"},
	)
	// Snapshot rows stored out of order; identity alignment must fix it.
	snapshots := map[string]*models.Snapshot{
		schema.TableHOA: hoaSnapshot([]int64{2, 1}, []string{"0", "1"}),
	}

	report := service.Validate(raw, snapshots)

	assert.True(t, report.Clean())
}

func TestValidate_SkipsColumnMissingFromSnapshot(t *testing.T) {
	service := NewValidationService(logger.New("test"))

	raw := rawExtractFor([]string{"HOA", "HOA_Flag"},
		map[string]string{"HOA": "250", "HOA_Flag": "yes"},
	)
	// Snapshot lost the HOA_Flag column entirely; it is skipped with a
	// warning, not reported as a mismatch.
	snapshots := map[string]*models.Snapshot{
		schema.TableHOA: {
			Table:   schema.TableHOA,
			Columns: []string{"HOA"},
			IDs:     []int64{1},
			Rows:    [][]string{{"250"}},
		},
	}

	report := service.Validate(raw, snapshots)

	assert.True(t, report.Clean())
}

func TestValidate_SkipsMissingSnapshotTable(t *testing.T) {
	service := NewValidationService(logger.New("test"))

	raw := rawExtractFor([]string{"HOA_Flag"},
		map[string]string{"HOA_Flag": "yes"},
	)

	report := service.Validate(raw, map[string]*models.Snapshot{})

	assert.True(t, report.Clean())
}

func TestValidate_PassthroughColumnsCompareVerbatim(t *testing.T) {
	service := NewValidationService(logger.New("test"))

	raw := rawExtractFor([]string{"Taxes"},
		map[string]string{"Taxes": "2100.50"},
		map[string]string{"Taxes": "1800"},
	)
	snapshots := map[string]*models.Snapshot{
		schema.TableTaxes: {
			Table:   schema.TableTaxes,
			Columns: []string{"Taxes"},
			IDs:     []int64{1, 2},
			Rows:    [][]string{{"2100.50"}, {"1800.00"}},
		},
	}

	report := service.Validate(raw, snapshots)

	// "1800" vs "1800.00" is a textual disagreement: canonicalization maps
	// synonyms, it does not parse numbers.
	require.Len(t, report.Findings, 1)
	assert.Equal(t, 1, report.Findings[0].Count)
}
