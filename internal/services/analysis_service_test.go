package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/logger"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/models"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/schema"
)

func snapshotOf(table string, columns []string, rows ...[]string) *models.Snapshot {
	snap := &models.Snapshot{Table: table, Columns: columns}
	for i, row := range rows {
		snap.IDs = append(snap.IDs, int64(i+1))
		snap.Rows = append(snap.Rows, row)
	}
	return snap
}

func metricValue(t *testing.T, result *models.AnalysisResult, name string) any {
	t.Helper()
	for _, m := range result.Metrics {
		if m.Name == name {
			return m.Value
		}
	}
	t.Fatalf("metric %q not found", name)
	return nil
}

func hasMetric(result *models.AnalysisResult, name string) bool {
	for _, m := range result.Metrics {
		if m.Name == name {
			return true
		}
	}
	return false
}

func TestAnalyze_PropertyMetrics(t *testing.T) {
	service := NewAnalysisService(logger.New("test"))

	snapshots := map[string]*models.Snapshot{
		schema.TableProperty: snapshotOf(schema.TableProperty,
			[]string{"Property_Type", "Pool", "Flood"},
			[]string{"Single Family", "1", "0"},
			[]string{"Single Family", "0", "1"},
			[]string{"Condo", "1", ""},
		),
	}

	result := service.Analyze(snapshots)

	assert.Equal(t, 3, metricValue(t, result, "Total Properties"))
	assert.Equal(t, 2, metricValue(t, result, "Unique Property Types"))
	assert.Equal(t, 2, metricValue(t, result, "Top Property Types - Single Family"))
	assert.Equal(t, 1, metricValue(t, result, "Top Property Types - Condo"))
	assert.Equal(t, 2, metricValue(t, result, "Pool - Yes Count"))
	assert.Equal(t, 1, metricValue(t, result, "Flood Zone - Count"))
}

func TestAnalyze_ValuationMetrics(t *testing.T) {
	service := NewAnalysisService(logger.New("test"))

	snapshots := map[string]*models.Snapshot{
		schema.TableValuation: snapshotOf(schema.TableValuation,
			[]string{"Expected_Rent", "ARV"},
			[]string{"1000", "100000"},
			[]string{"2000", "200000"},
			[]string{"", "50000"},
		),
	}

	result := service.Analyze(snapshots)

	assert.InDelta(t, 1500.0, metricValue(t, result, "Expected Rent - Mean").(float64), 1e-9)
	assert.InDelta(t, 1500.0, metricValue(t, result, "Expected Rent - Median").(float64), 1e-9)
	assert.InDelta(t, 2000.0, metricValue(t, result, "Expected Rent - Max").(float64), 1e-9)
	assert.InDelta(t, 1000.0, metricValue(t, result, "Expected Rent - Min").(float64), 1e-9)
	assert.InDelta(t, 3000.0, metricValue(t, result, "Expected Rent - Total Sum").(float64), 1e-9)
	assert.InDelta(t, 350000.0/3, metricValue(t, result, "ARV - Average").(float64), 1e-9)

	// Both complete rows have ratio 0.01.
	assert.InDelta(t, 0.01, metricValue(t, result, "Rent to ARV Ratio - Mean").(float64), 1e-9)

	assert.Equal(t, []float64{1000, 2000}, result.ExpectedRent)

	require.NotNil(t, result.ValuationCorr)
	assert.Equal(t, []string{"Expected_Rent", "ARV"}, result.ValuationCorr.Columns)
	assert.InDelta(t, 1.0, result.ValuationCorr.Values[0][0], 1e-9)
	assert.InDelta(t, 1.0, result.ValuationCorr.Values[0][1], 1e-9, "perfectly correlated series")
}

func TestAnalyze_RehabFlagCounts(t *testing.T) {
	service := NewAnalysisService(logger.New("test"))

	columns := schema.Columns(schema.TableRehab)
	row1 := make([]string, len(columns))
	row2 := make([]string, len(columns))
	for i, col := range columns {
		if schema.IsFlag(schema.TableRehab, col) {
			row1[i] = "1"
			row2[i] = "0"
		}
	}
	// Paint true twice in row2 variant
	for i, col := range columns {
		if col == "Paint" {
			row2[i] = "1"
		}
	}

	snapshots := map[string]*models.Snapshot{
		schema.TableRehab: snapshotOf(schema.TableRehab, columns, row1, row2),
	}

	result := service.Analyze(snapshots)

	require.Len(t, result.RehabFlagCounts, 11)
	counts := make(map[string]int)
	for _, fc := range result.RehabFlagCounts {
		counts[fc.Column] = fc.Count
	}
	assert.Equal(t, 2, counts["Paint"])
	assert.Equal(t, 1, counts["Roof_Flag"])
	assert.Equal(t, 2, metricValue(t, result, "Rehab Flags True Counts - Paint"))
}

func TestAnalyze_HOAAndTaxes(t *testing.T) {
	service := NewAnalysisService(logger.New("test"))

	snapshots := map[string]*models.Snapshot{
		schema.TableHOA: snapshotOf(schema.TableHOA,
			[]string{"HOA", "HOA_Flag"},
			[]string{"250", "1"},
			[]string{"", ""},
			[]string{"250", "0"},
		),
		schema.TableTaxes: snapshotOf(schema.TableTaxes,
			[]string{"Taxes"},
			[]string{"1000"},
			[]string{"3000"},
		),
	}

	result := service.Analyze(snapshots)

	assert.Equal(t, 2, metricValue(t, result, "Properties with HOA Info"))
	assert.Equal(t, 2, metricValue(t, result, "HOA Breakdown - 250"))
	assert.InDelta(t, 2000.0, metricValue(t, result, "Taxes - Mean").(float64), 1e-9)
	assert.InDelta(t, math.Sqrt(2000000), metricValue(t, result, "Taxes - Std Dev").(float64), 1e-9)
}

func TestAnalyze_MissingSnapshots(t *testing.T) {
	service := NewAnalysisService(logger.New("test"))

	result := service.Analyze(map[string]*models.Snapshot{})

	assert.Empty(t, result.Metrics)
	assert.Nil(t, result.ValuationCorr)
	assert.False(t, hasMetric(result, "Total Properties"))
}

func TestAnalyze_StatsSkipUndefinedValues(t *testing.T) {
	service := NewAnalysisService(logger.New("test"))

	// A single tax value has no sample standard deviation; the metric is
	// simply omitted rather than reported as NaN.
	snapshots := map[string]*models.Snapshot{
		schema.TableTaxes: snapshotOf(schema.TableTaxes,
			[]string{"Taxes"},
			[]string{"1000"},
		),
	}

	result := service.Analyze(snapshots)

	assert.True(t, hasMetric(result, "Taxes - Mean"))
	assert.False(t, hasMetric(result, "Taxes - Std Dev"))
}
