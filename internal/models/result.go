package models

// LoadResult reports the outcome of one load batch. Because the batch aborts
// on the first failed record, Failed is at most 1; records after the failure
// are never attempted and are counted in neither field.
type LoadResult struct {
	Committed int
	Failed    int
}

// ColumnMismatch is one validation finding: a (table, column) pair whose
// recomputed canonical values disagree with the persisted snapshot, with up
// to the first five disagreeing pairs captured as evidence.
type ColumnMismatch struct {
	Table            string
	Column           string
	Count            int
	SampleRaw        []string
	SampleNormalized []string
}

// MismatchReport accumulates the findings of one validation pass. Findings
// are diagnostic only; an empty report is a clean pass.
type MismatchReport struct {
	Findings []ColumnMismatch
}

// Clean reports whether the validation pass found no disagreements.
func (r *MismatchReport) Clean() bool {
	return len(r.Findings) == 0
}

// SummaryMetric is one flattened key/value entry of the analysis summary.
type SummaryMetric struct {
	Name  string
	Value any
}

// FlagCount pairs a rehab flag column with its true-value count.
type FlagCount struct {
	Column string
	Count  int
}

// CorrelationMatrix is a symmetric Pearson correlation matrix over the
// numeric columns of one table. Values is row-major and square, aligned with
// Columns on both axes.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
}

// AnalysisResult carries the computed summary metrics plus the intermediate
// series the chart writers render.
type AnalysisResult struct {
	Metrics         []SummaryMetric
	ExpectedRent    []float64
	RehabFlagCounts []FlagCount
	ValuationCorr   *CorrelationMatrix
}
