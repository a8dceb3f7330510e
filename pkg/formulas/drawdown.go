package formulas

// MaxDrawdown calculates the maximum drawdown (in percent, always <= 0)
// from a series of fractional returns.
//
// A cumulative wealth index is built from the returns (seeded at 1.0),
// the running peak is tracked, and the minimum of (value/peak - 1) x 100
// over the series is the maximum drawdown.
func MaxDrawdown(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	value := 1.0
	peak := 1.0
	maxDrawdown := 0.0

	for _, ret := range returns {
		value *= 1 + ret
		if value > peak {
			peak = value
		}
		if peak > 0 {
			drawdown := (value/peak - 1) * 100
			if drawdown < maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	return maxDrawdown
}

// ValueAtRisk95 returns the 5th percentile of daily returns expressed
// in percent: the worst daily loss not exceeded on 95% of days.
func ValueAtRisk95(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	pct := make([]float64, len(returns))
	for i, ret := range returns {
		pct[i] = ret * 100
	}
	return Percentile(pct, 5)
}
