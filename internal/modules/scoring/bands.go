package scoring

// Band maps a threshold to a point contribution. Tables are evaluated
// top-down; the first band whose condition holds wins, and Fallback
// applies when none does. Keeping the weights as data (rather than
// inline conditionals) means the risk-score and grade tables can be
// tuned in one place.
type Band struct {
	Threshold float64
	Points    float64
}

// pointsAbove returns the points of the first band with value > threshold.
func pointsAbove(value float64, bands []Band, fallback float64) float64 {
	for _, band := range bands {
		if value > band.Threshold {
			return band.Points
		}
	}
	return fallback
}

// pointsBelow returns the points of the first band with value < threshold.
func pointsBelow(value float64, bands []Band, fallback float64) float64 {
	for _, band := range bands {
		if value < band.Threshold {
			return band.Points
		}
	}
	return fallback
}

// Risk-score component tables. Contributions are signed and sum onto a
// neutral base of 50, clamped to [0, 100].
var (
	riskScoreBase = 50.0

	riskVolatilityBands = []Band{ // lower volatility is better
		{15, 20}, {25, 15}, {35, 10}, {50, 0}, {70, -10},
	}
	riskVolatilityFallback = -20.0

	riskSharpeBands = []Band{
		{1.5, 20}, {1.0, 15}, {0.5, 10}, {0, 5}, {-0.5, -5},
	}
	riskSharpeFallback = -15.0

	riskDrawdownBands = []Band{ // drawdowns are negative; closer to 0 is better
		{-5, 20}, {-10, 15}, {-20, 10}, {-35, 0}, {-50, -10},
	}
	riskDrawdownFallback = -20.0

	riskSortinoBands = []Band{
		{1.0, 8}, {0.5, 5}, {0, 2},
	}
	riskSortinoFallback = -5.0

	riskMomentumBands = []Band{
		{15, 9}, {5, 6}, {-5, 3}, {-15, -3},
	}
	riskMomentumFallback = -9.0

	riskReturnBands = []Band{
		{25, 15}, {15, 12}, {10, 8}, {5, 5}, {0, 2}, {-10, -5},
	}
	riskReturnFallback = -15.0
)

// Grade component tables. Bucket weights: return 35, sharpe 25,
// volatility 20, drawdown 10, sortino 10 (points out of 100).
var (
	gradeReturnBands = []Band{
		{30, 35}, {20, 30}, {15, 25}, {10, 20}, {5, 15}, {0, 10}, {-10, 5},
	}
	gradeReturnFallback = 0.0

	gradeSharpeBands = []Band{
		{2.0, 25}, {1.5, 22}, {1.0, 18}, {0.5, 14}, {0, 10}, {-0.5, 5},
	}
	gradeSharpeFallback = 0.0

	gradeVolatilityBands = []Band{ // inverted: lower is better
		{15, 20}, {25, 17}, {35, 14}, {50, 10}, {70, 6},
	}
	gradeVolatilityFallback = 0.0

	gradeDrawdownBands = []Band{
		{-10, 10}, {-20, 8}, {-35, 5}, {-50, 2},
	}
	gradeDrawdownFallback = 0.0

	gradeSortinoBands = []Band{
		{1.5, 10}, {1.0, 8}, {0.5, 5}, {0, 3},
	}
	gradeSortinoFallback = 0.0
)
