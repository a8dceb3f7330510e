package corporate

import (
	"github.com/bistfolio/bistfolio/internal/modules/ledger"
	"github.com/bistfolio/bistfolio/internal/modules/marketdata"
)

// Split is a known or declared stock split.
type Split struct {
	Symbol string     `json:"symbol"`
	Date   ledger.Day `json:"date"`
	Ratio  float64    `json:"ratio"` // 1 share becomes Ratio shares
}

// KnownSplits lists splits that predate the ledger's own split
// transactions. Should eventually move to the database.
var KnownSplits = []Split{
	{Symbol: "CCOLA", Date: ledger.NewDay(2024, 8, 1), Ratio: 11.0},
}

// SplitsFor returns the known splits for a symbol.
func SplitsFor(symbol string) []Split {
	var out []Split
	for _, split := range KnownSplits {
		if split.Symbol == symbol {
			out = append(out, split)
		}
	}
	return out
}

// AdjustForSplit normalizes pre-split history onto the post-split share
// count: every bar strictly before splitDate has its OHLC fields
// divided by ratio and its volume multiplied by ratio. Bars on or
// after the split date are untouched. The input slice is not mutated.
func AdjustForSplit(bars []marketdata.DailyPrice, splitDate ledger.Day, ratio float64) []marketdata.DailyPrice {
	if ratio <= 0 {
		return bars
	}

	adjusted := make([]marketdata.DailyPrice, len(bars))
	for i, bar := range bars {
		if bar.Date.Before(splitDate) {
			bar.Open /= ratio
			bar.High /= ratio
			bar.Low /= ratio
			bar.Close /= ratio
			bar.Volume = int64(float64(bar.Volume) * ratio)
		}
		adjusted[i] = bar
	}
	return adjusted
}

// AdjustForKnownSplits applies every known split for the symbol.
func AdjustForKnownSplits(symbol string, bars []marketdata.DailyPrice) []marketdata.DailyPrice {
	for _, split := range SplitsFor(symbol) {
		bars = AdjustForSplit(bars, split.Date, split.Ratio)
	}
	return bars
}

// AdjustClosePoints applies split adjustment to a close-only series.
func AdjustClosePoints(points []marketdata.ClosePoint, splitDate ledger.Day, ratio float64) []marketdata.ClosePoint {
	if ratio <= 0 {
		return points
	}

	adjusted := make([]marketdata.ClosePoint, len(points))
	for i, point := range points {
		if point.Date.Before(splitDate) {
			point.Close /= ratio
		}
		adjusted[i] = point
	}
	return adjusted
}
