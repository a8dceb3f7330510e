package risk

import "github.com/bistfolio/bistfolio/pkg/formulas"

// MarketReturns builds the plain day-over-day return series from a
// close-price series. This is the "market" path: what the stock did,
// regardless of when the investor bought.
func MarketReturns(prices []float64) []float64 {
	return formulas.DailyReturns(prices)
}

// UserRelativeReturns builds a return series seeded at the investor's
// average cost basis instead of the first market price. The first
// observation measures the move from the purchase price to the first
// close, so the series reflects actual performance, not market
// performance. Both paths feed the same metric functions.
func UserRelativeReturns(prices []float64, costBasis float64) []float64 {
	if costBasis <= 0 || len(prices) == 0 {
		return nil
	}

	returns := make([]float64, 0, len(prices))
	prev := costBasis
	for _, price := range prices {
		if prev > 0 {
			returns = append(returns, (price-prev)/prev)
		}
		prev = price
	}
	return returns
}
