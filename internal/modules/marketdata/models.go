package marketdata

import (
	"errors"

	"github.com/bistfolio/bistfolio/internal/modules/ledger"
)

// ErrNoPriceData is returned when a symbol has no usable price history.
var ErrNoPriceData = errors.New("no price data for symbol")

// DailyPrice is one OHLCV bar.
type DailyPrice struct {
	Date   ledger.Day `json:"date"`
	Open   float64    `json:"open"`
	High   float64    `json:"high"`
	Low    float64    `json:"low"`
	Close  float64    `json:"close"`
	Volume int64      `json:"volume"`
}

// ClosePoint is a date/close pair, the minimum the valuation engine needs.
type ClosePoint struct {
	Date  ledger.Day `json:"date"`
	Close float64    `json:"close"`
}

// PriceSource is the price-series collaborator contract. AsOf returns
// the latest known close at or before the given day (forward-fill
// semantics for non-trading days) and false when the symbol has no
// data point at or before that day.
type PriceSource interface {
	AsOf(symbol string, day ledger.Day) (float64, bool)
	Latest(symbol string) (float64, bool)
}

// RateSource is the FX collaborator contract. LatestRate returns how
// many quote units one base unit buys, or false when no rate is known.
type RateSource interface {
	LatestRate(base, quote string) (float64, bool)
}

// HistoryProvider fetches daily bars from an external source. Retry
// and backoff policy belongs to implementations, not the engine.
type HistoryProvider interface {
	FetchDaily(symbol string, start, end ledger.Day) ([]DailyPrice, error)
}

// SectorInfo is per-symbol classification metadata.
type SectorInfo struct {
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
	Source   string `json:"source"`
}

// SectorProvider looks up sector metadata for a symbol.
type SectorProvider interface {
	SectorInfo(symbol string) (SectorInfo, error)
}

// Closes extracts the close column from a bar series.
func Closes(bars []DailyPrice) []float64 {
	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}
	return closes
}
