package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloats(t *testing.T) {
	got := parseFloats([]string{"1200", "", "n/a", "1800.50", "-3"})
	assert.Equal(t, []float64{1200, 1800.50, -3}, got)
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"odd count", []float64{3, 1, 2}, 2},
		{"even count averages middle pair", []float64{4, 1, 3, 2}, 2.5},
		{"single value", []float64{7}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, median(tt.values))
		})
	}
}

func TestMedian_DoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	median(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestMedian_Empty(t *testing.T) {
	assert.True(t, math.IsNaN(median(nil)))
}

func TestStddev(t *testing.T) {
	// Sample stddev of {2000, 4000} is sqrt(2000000).
	assert.InDelta(t, math.Sqrt(2000000), stddev([]float64{2000, 4000}), 1e-9)
}

func TestStddev_FewerThanTwoValues(t *testing.T) {
	assert.True(t, math.IsNaN(stddev([]float64{5})))
	assert.True(t, math.IsNaN(stddev(nil)))
}

func TestValueCounts_OrderAndTies(t *testing.T) {
	got := valueCounts([]string{"Tenant", "Vacant", "Tenant", "", "Owner", "Vacant"})

	assert.Equal(t, []valueCount{
		{Value: "Tenant", Count: 2},
		{Value: "Vacant", Count: 2},
		{Value: "Owner", Count: 1},
	}, got)
}

func TestPearson(t *testing.T) {
	t.Run("perfect positive correlation", func(t *testing.T) {
		got := pearson([]string{"1", "2", "3"}, []string{"10", "20", "30"})
		assert.InDelta(t, 1.0, got, 1e-9)
	})

	t.Run("perfect negative correlation", func(t *testing.T) {
		got := pearson([]string{"1", "2", "3"}, []string{"3", "2", "1"})
		assert.InDelta(t, -1.0, got, 1e-9)
	})

	t.Run("incomplete pairs are dropped", func(t *testing.T) {
		// Only rows 0 and 2 are complete; they still correlate perfectly.
		got := pearson([]string{"1", "", "3"}, []string{"10", "20", "30"})
		assert.InDelta(t, 1.0, got, 1e-9)
	})

	t.Run("fewer than two complete pairs", func(t *testing.T) {
		got := pearson([]string{"1", ""}, []string{"10", "20"})
		assert.True(t, math.IsNaN(got))
	})

	t.Run("zero variance", func(t *testing.T) {
		got := pearson([]string{"5", "5", "5"}, []string{"1", "2", "3"})
		assert.True(t, math.IsNaN(got))
	})
}
