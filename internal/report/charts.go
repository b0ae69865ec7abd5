package report

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/onlymayank11/homellc-data-engineer-assessment-skeleton/internal/models"
)

const histogramBins = 30

// SaveExpectedRentHistogram renders the Expected_Rent distribution as a PNG.
// No-op when there are no numeric rents to plot.
func SaveExpectedRentHistogram(path string, rents []float64) error {
	if len(rents) == 0 {
		return nil
	}

	values := make(plotter.Values, len(rents))
	copy(values, rents)

	p := plot.New()
	p.Title.Text = "Expected Rent Distribution"
	p.X.Label.Text = "Expected Rent"
	p.Y.Label.Text = "Frequency"

	hist, err := plotter.NewHist(values, histogramBins)
	if err != nil {
		return fmt.Errorf("failed to build rent histogram: %w", err)
	}
	p.Add(hist)

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save rent histogram %s: %w", path, err)
	}
	return nil
}

// SaveRehabFlagsBar renders the rehab-flag true counts as a bar chart PNG,
// most frequent first. No-op when there are no flag counts.
func SaveRehabFlagsBar(path string, counts []models.FlagCount) error {
	if len(counts) == 0 {
		return nil
	}

	sorted := append([]models.FlagCount(nil), counts...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })

	values := make(plotter.Values, len(sorted))
	labels := make([]string, len(sorted))
	for i, fc := range sorted {
		values[i] = float64(fc.Count)
		labels[i] = fc.Column
	}

	p := plot.New()
	p.Title.Text = "Rehab Flags - True Value Counts"
	p.Y.Label.Text = "Count"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("failed to build rehab flag bars: %w", err)
	}
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = 0.785 // 45 degrees
	p.X.Tick.Label.XAlign = -1
	p.X.Tick.Label.YAlign = -0.5

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save rehab flag bars %s: %w", path, err)
	}
	return nil
}

// SaveValuationHeatmap renders the valuation correlation matrix as a heatmap
// PNG. No-op when the matrix is nil.
func SaveValuationHeatmap(path string, corr *models.CorrelationMatrix) error {
	if corr == nil {
		return nil
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)

	p := plot.New()
	p.Title.Text = "Valuation Correlation Heatmap"

	heat := plotter.NewHeatMap(corrGrid{corr}, cm.Palette(255))
	p.Add(heat)
	p.NominalX(corr.Columns...)
	p.NominalY(corr.Columns...)
	p.X.Tick.Label.Rotation = 0.785
	p.X.Tick.Label.XAlign = -1
	p.X.Tick.Label.YAlign = -0.5

	if err := p.Save(10*vg.Inch, 9*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save valuation heatmap %s: %w", path, err)
	}
	return nil
}

// corrGrid adapts a CorrelationMatrix to the plotter.GridXYZ interface.
type corrGrid struct {
	m *models.CorrelationMatrix
}

func (g corrGrid) Dims() (int, int)   { n := len(g.m.Columns); return n, n }
func (g corrGrid) Z(c, r int) float64 { return g.m.Values[r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }
