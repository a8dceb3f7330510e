package risk

import "errors"

// MinSamples is the minimum number of return observations required
// before any risk metric is computed. Below it the result is an
// explicit insufficient-data error, never a degenerate number.
const MinSamples = 5

// ErrInsufficientData is returned when a return series is too short.
var ErrInsufficientData = errors.New("insufficient data for risk metrics")

// Profile holds the per-symbol risk and performance metrics, always
// derived from a return series.
type Profile struct {
	Volatility       float64 `json:"volatility"`        // annualized, percent
	AnnualizedReturn float64 `json:"annualized_return"` // percent
	SharpeRatio      float64 `json:"sharpe_ratio"`
	MaxDrawdown      float64 `json:"max_drawdown"` // percent, <= 0
	VaR95            float64 `json:"var_95"`       // percent, worst daily loss at 95%
}
