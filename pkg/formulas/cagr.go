package formulas

import "math"

// AnnualizedReturn calculates the compound annual growth rate (in
// percent) from cost basis to current value over daysHeld.
//
// Formula: ((current / cost) ^ (365 / days) - 1) x 100
//
// Degenerate inputs (zero cost basis, zero days held, a negative base
// raised to a fractional power) return 0 rather than NaN.
func AnnualizedReturn(costBasis, currentValue float64, daysHeld int) float64 {
	if costBasis <= 0 || daysHeld <= 0 || currentValue <= 0 {
		return 0
	}

	cagr := (math.Pow(currentValue/costBasis, 365/float64(daysHeld)) - 1) * 100
	if math.IsNaN(cagr) || math.IsInf(cagr, 0) {
		return 0
	}
	return cagr
}

// SharpeRatio is the annualized return divided by annualized
// volatility, both in percent. No risk-free rate is subtracted.
// Returns 0 when volatility is 0.
func SharpeRatio(annualizedReturn, volatility float64) float64 {
	if volatility == 0 {
		return 0
	}
	return annualizedReturn / volatility
}
