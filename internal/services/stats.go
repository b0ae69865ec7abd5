package services

import (
	"math"
	"sort"
	"strconv"
)

// parseFloats parses the numeric cells of a snapshot column, dropping empty
// and non-numeric values.
func parseFloats(values []string) []float64 {
	var out []float64
	for _, v := range values {
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		out = append(out, f)
	}
	return out
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return sum(values) / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// stddev is the sample standard deviation.
func stddev(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		ss += (v - m) * (v - m)
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

func minOf(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// countValue counts exact occurrences of target in a snapshot column.
func countValue(values []string, target string) int {
	n := 0
	for _, v := range values {
		if v == target {
			n++
		}
	}
	return n
}

// countNonEmpty counts cells that are not NULL in the snapshot.
func countNonEmpty(values []string) int {
	n := 0
	for _, v := range values {
		if v != "" {
			n++
		}
	}
	return n
}

// valueCount pairs a categorical value with its frequency.
type valueCount struct {
	Value string
	Count int
}

// valueCounts tallies the non-empty values of a column, most frequent first,
// ties broken alphabetically for stable output.
func valueCounts(values []string) []valueCount {
	tally := make(map[string]int)
	for _, v := range values {
		if v == "" {
			continue
		}
		tally[v]++
	}
	out := make([]valueCount, 0, len(tally))
	for v, n := range tally {
		out = append(out, valueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// pearson computes the correlation of the pairwise-complete observations of
// two parallel columns. Returns NaN when fewer than two complete pairs exist
// or either side has zero variance.
func pearson(xs, ys []string) float64 {
	var xv, yv []float64
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	for i := 0; i < n; i++ {
		x, errX := strconv.ParseFloat(xs[i], 64)
		y, errY := strconv.ParseFloat(ys[i], 64)
		if xs[i] == "" || ys[i] == "" || errX != nil || errY != nil {
			continue
		}
		xv = append(xv, x)
		yv = append(yv, y)
	}
	if len(xv) < 2 {
		return math.NaN()
	}

	mx, my := mean(xv), mean(yv)
	var cov, varX, varY float64
	for i := range xv {
		cov += (xv[i] - mx) * (yv[i] - my)
		varX += (xv[i] - mx) * (xv[i] - mx)
		varY += (yv[i] - my) * (yv[i] - my)
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}
