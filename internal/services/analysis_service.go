package services

import (
	"math"

	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/logger"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/models"
	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/schema"
)

// topPropertyTypes caps the property-type breakdown in the summary.
const topPropertyTypes = 3

// AnalysisService computes descriptive statistics over the normalized
// snapshots. Pure read-only aggregation: no snapshot is modified.
type AnalysisService interface {
	Analyze(snapshots map[string]*models.Snapshot) *models.AnalysisResult
}

// analysisService is the concrete implementation of AnalysisService.
type analysisService struct {
	log *logger.Logger
}

// NewAnalysisService creates a new instance of AnalysisService.
func NewAnalysisService(log *logger.Logger) AnalysisService {
	return &analysisService{log: log.WithComponent("analyzer")}
}

func (s *analysisService) Analyze(snapshots map[string]*models.Snapshot) *models.AnalysisResult {
	result := &models.AnalysisResult{}

	s.analyzeProperty(snapshots[schema.TableProperty], result)
	s.analyzeLeads(snapshots[schema.TableLeads], result)
	s.analyzeValuation(snapshots[schema.TableValuation], result)
	s.analyzeHOA(snapshots[schema.TableHOA], result)
	s.analyzeRehab(snapshots[schema.TableRehab], result)
	s.analyzeTaxes(snapshots[schema.TableTaxes], result)

	s.log.Info("Analysis complete", map[string]interface{}{
		"metrics": len(result.Metrics),
	})
	return result
}

func (s *analysisService) analyzeProperty(snap *models.Snapshot, result *models.AnalysisResult) {
	if snap == nil {
		return
	}
	s.metric(result, "Total Properties", snap.Len())

	if types, ok := snap.Column("Property_Type"); ok {
		counts := valueCounts(types)
		s.metric(result, "Unique Property Types", len(counts))
		for i, vc := range counts {
			if i >= topPropertyTypes {
				break
			}
			s.metric(result, "Top Property Types - "+vc.Value, vc.Count)
		}
	}
	// The snapshot holds coerced binary indicators, so yes/flood-zone counts
	// are counts of the indicator, not of the original text.
	if pool, ok := snap.Column("Pool"); ok {
		s.metric(result, "Pool - Yes Count", countValue(pool, "1"))
	}
	if flood, ok := snap.Column("Flood"); ok {
		s.metric(result, "Flood Zone - Count", countValue(flood, "0"))
	}
}

func (s *analysisService) analyzeLeads(snap *models.Snapshot, result *models.AnalysisResult) {
	if snap == nil {
		return
	}
	if status, ok := snap.Column("Reviewed_Status"); ok {
		for _, vc := range valueCounts(status) {
			s.metric(result, "Reviewed_Status Breakdown - "+vc.Value, vc.Count)
		}
	}
}

func (s *analysisService) analyzeValuation(snap *models.Snapshot, result *models.AnalysisResult) {
	if snap == nil {
		return
	}

	if rentCol, ok := snap.Column("Expected_Rent"); ok {
		rents := parseFloats(rentCol)
		result.ExpectedRent = rents
		s.metricIf(result, "Expected Rent - Mean", mean(rents))
		s.metricIf(result, "Expected Rent - Median", median(rents))
		s.metricIf(result, "Expected Rent - Max", maxOf(rents))
		s.metricIf(result, "Expected Rent - Min", minOf(rents))
		s.metricIf(result, "Expected Rent - Std Dev", stddev(rents))
		s.metric(result, "Expected Rent - Total Sum", sum(rents))
	}

	if arvCol, ok := snap.Column("ARV"); ok {
		s.metricIf(result, "ARV - Average", mean(parseFloats(arvCol)))
	}

	s.analyzeRentToARV(snap, result)
	result.ValuationCorr = correlationMatrix(snap)
}

// analyzeRentToARV derives the row-wise Expected_Rent / ARV ratio, skipping
// rows where either side is missing, non-numeric, or ARV is zero.
func (s *analysisService) analyzeRentToARV(snap *models.Snapshot, result *models.AnalysisResult) {
	rentCol, okRent := snap.Column("Expected_Rent")
	arvCol, okARV := snap.Column("ARV")
	if !okRent || !okARV {
		return
	}

	var ratios []float64
	for i := 0; i < len(rentCol) && i < len(arvCol); i++ {
		rents := parseFloats(rentCol[i : i+1])
		arvs := parseFloats(arvCol[i : i+1])
		if len(rents) == 0 || len(arvs) == 0 || arvs[0] == 0 {
			continue
		}
		ratios = append(ratios, rents[0]/arvs[0])
	}
	if len(ratios) == 0 {
		return
	}
	s.metricIf(result, "Rent to ARV Ratio - Mean", mean(ratios))
	s.metricIf(result, "Rent to ARV Ratio - Median", median(ratios))
	s.metricIf(result, "Rent to ARV Ratio - Max", maxOf(ratios))
	s.metricIf(result, "Rent to ARV Ratio - Min", minOf(ratios))
}

func (s *analysisService) analyzeHOA(snap *models.Snapshot, result *models.AnalysisResult) {
	if snap == nil {
		return
	}
	if hoa, ok := snap.Column("HOA"); ok {
		s.metric(result, "Properties with HOA Info", countNonEmpty(hoa))
		for _, vc := range valueCounts(hoa) {
			s.metric(result, "HOA Breakdown - "+vc.Value, vc.Count)
		}
	}
}

func (s *analysisService) analyzeRehab(snap *models.Snapshot, result *models.AnalysisResult) {
	if snap == nil {
		return
	}
	for _, col := range schema.Columns(schema.TableRehab) {
		if !schema.IsFlag(schema.TableRehab, col) {
			continue
		}
		values, ok := snap.Column(col)
		if !ok {
			continue
		}
		count := countValue(values, "1")
		result.RehabFlagCounts = append(result.RehabFlagCounts, models.FlagCount{Column: col, Count: count})
		s.metric(result, "Rehab Flags True Counts - "+col, count)
	}
}

func (s *analysisService) analyzeTaxes(snap *models.Snapshot, result *models.AnalysisResult) {
	if snap == nil {
		return
	}
	if taxCol, ok := snap.Column("Taxes"); ok {
		taxes := parseFloats(taxCol)
		s.metricIf(result, "Taxes - Mean", mean(taxes))
		s.metricIf(result, "Taxes - Median", median(taxes))
		s.metricIf(result, "Taxes - Max", maxOf(taxes))
		s.metricIf(result, "Taxes - Min", minOf(taxes))
		s.metricIf(result, "Taxes - Std Dev", stddev(taxes))
	}
}

func (s *analysisService) metric(result *models.AnalysisResult, name string, value any) {
	result.Metrics = append(result.Metrics, models.SummaryMetric{Name: name, Value: value})
}

// metricIf records a float metric only when it is defined for the data.
func (s *analysisService) metricIf(result *models.AnalysisResult, name string, value float64) {
	if math.IsNaN(value) {
		return
	}
	s.metric(result, name, value)
}

// correlationMatrix computes the pairwise-complete Pearson matrix over the
// numeric columns of the snapshot. Columns with no numeric content are left
// out; a matrix smaller than 2x2 is reported as nil.
func correlationMatrix(snap *models.Snapshot) *models.CorrelationMatrix {
	var numeric []string
	series := make(map[string][]string)
	for _, col := range snap.Columns {
		values, ok := snap.Column(col)
		if !ok {
			continue
		}
		if len(parseFloats(values)) < 2 {
			continue
		}
		numeric = append(numeric, col)
		series[col] = values
	}
	if len(numeric) < 2 {
		return nil
	}

	matrix := &models.CorrelationMatrix{Columns: numeric}
	for _, rowCol := range numeric {
		row := make([]float64, len(numeric))
		for j, colCol := range numeric {
			r := pearson(series[rowCol], series[colCol])
			if math.IsNaN(r) {
				r = 0
			}
			row[j] = r
		}
		matrix.Values = append(matrix.Values, row)
	}
	return matrix
}
