package formulas

import (
	"math"
	"testing"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		expected float64
	}{
		{"empty", []float64{}, 0},
		{"single", []float64{5}, 5},
		{"simple", []float64{1, 2, 3, 4}, 2.5},
		{"negative", []float64{-2, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.data); !almostEqual(got, tt.expected, 1e-9) {
				t.Errorf("Mean(%v) = %v, want %v", tt.data, got, tt.expected)
			}
		})
	}
}

func TestStdDevIsPopulation(t *testing.T) {
	// Population stddev of {2, 4, 4, 4, 5, 5, 7, 9} is exactly 2.
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := StdDev(data); !almostEqual(got, 2.0, 1e-9) {
		t.Errorf("StdDev = %v, want 2.0", got)
	}

	if got := StdDev([]float64{5}); got != 0 {
		t.Errorf("StdDev of single value = %v, want 0", got)
	}
}

func TestDailyReturns(t *testing.T) {
	tests := []struct {
		name     string
		prices   []float64
		expected []float64
	}{
		{"too short", []float64{100}, []float64{}},
		{"up and down", []float64{100, 110, 99}, []float64{0.1, -0.1}},
		{"zero price skipped", []float64{100, 0, 50}, []float64{-1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DailyReturns(tt.prices)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d returns, want %d", len(got), len(tt.expected))
			}
			for i := range got {
				if !almostEqual(got[i], tt.expected[i], 1e-9) {
					t.Errorf("return[%d] = %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestAnnualizedVolatility(t *testing.T) {
	if got := AnnualizedVolatility(nil); got != 0 {
		t.Errorf("empty series volatility = %v, want 0", got)
	}

	// Constant returns have zero deviation.
	if got := AnnualizedVolatility([]float64{0.01, 0.01, 0.01}); got != 0 {
		t.Errorf("constant returns volatility = %v, want 0", got)
	}

	returns := []float64{0.01, -0.01, 0.02, -0.02}
	expected := StdDev(returns) * math.Sqrt(252) * 100
	if got := AnnualizedVolatility(returns); !almostEqual(got, expected, 1e-9) {
		t.Errorf("volatility = %v, want %v", got, expected)
	}
}

func TestPercentile(t *testing.T) {
	data := []float64{15, 20, 35, 40, 50}

	tests := []struct {
		name     string
		p        float64
		expected float64
	}{
		{"min", 0, 15},
		{"max", 100, 50},
		{"median", 50, 35},
		// rank = 0.05 * 4 = 0.2 -> 15 + 0.2*(20-15) = 16
		{"fifth interpolated", 5, 16},
		// rank = 0.4 * 4 = 1.6 -> 20 + 0.6*(35-20) = 29
		{"fortieth interpolated", 40, 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentile(data, tt.p); !almostEqual(got, tt.expected, 1e-9) {
				t.Errorf("Percentile(%v) = %v, want %v", tt.p, got, tt.expected)
			}
		})
	}

	if got := Percentile(nil, 50); got != 0 {
		t.Errorf("empty percentile = %v, want 0", got)
	}
}
