package formulas

import "testing"

func TestAnnualizedReturn(t *testing.T) {
	tests := []struct {
		name         string
		costBasis    float64
		currentValue float64
		daysHeld     int
		expected     float64
	}{
		{"zero cost basis", 0, 1000, 100, 0},
		{"zero days held", 1000, 1200, 0, 0},
		{"negative value", 1000, -50, 100, 0},
		// Exactly one year, 20% gain.
		{"one year", 1000, 1200, 365, 20},
		// Two years at 21% total is ~10% annualized.
		{"two years", 1000, 1210, 730, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnnualizedReturn(tt.costBasis, tt.currentValue, tt.daysHeld)
			if !almostEqual(got, tt.expected, 1e-6) {
				t.Errorf("AnnualizedReturn = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSharpeRatio(t *testing.T) {
	if got := SharpeRatio(20, 0); got != 0 {
		t.Errorf("zero volatility sharpe = %v, want 0", got)
	}
	if got := SharpeRatio(30, 20); !almostEqual(got, 1.5, 1e-9) {
		t.Errorf("sharpe = %v, want 1.5", got)
	}
	if got := SharpeRatio(-10, 20); !almostEqual(got, -0.5, 1e-9) {
		t.Errorf("negative sharpe = %v, want -0.5", got)
	}
}
