package risk

import "github.com/bistfolio/bistfolio/pkg/formulas"

// ComputeProfile derives a Profile from a daily return series.
//
// The annualized return is passed in rather than derived because the
// user-relative path measures it from cost basis over the holding
// period (CAGR), not from the return series itself.
func ComputeProfile(returns []float64, annualizedReturn float64) (Profile, error) {
	if len(returns) < MinSamples {
		return Profile{}, ErrInsufficientData
	}

	volatility := formulas.AnnualizedVolatility(returns)

	return Profile{
		Volatility:       volatility,
		AnnualizedReturn: annualizedReturn,
		SharpeRatio:      formulas.SharpeRatio(annualizedReturn, volatility),
		MaxDrawdown:      formulas.MaxDrawdown(returns),
		VaR95:            formulas.ValueAtRisk95(returns),
	}, nil
}
