package marketdata

import (
	"math"

	talib "github.com/markcheno/go-talib"

	"github.com/bistfolio/bistfolio/pkg/formulas"
)

// ChartPoint is one bar enriched with technical indicators for charting.
type ChartPoint struct {
	DailyPrice
	SMA20       *float64 `json:"sma_20,omitempty"`
	SMA50       *float64 `json:"sma_50,omitempty"`
	DailyReturn *float64 `json:"daily_return,omitempty"` // percent
	Volatility  *float64 `json:"volatility,omitempty"`   // annualized percent, 20-day window
}

// ChartSummary aggregates a chart series.
type ChartSummary struct {
	LatestPrice  float64 `json:"latest_price"`
	PeriodReturn float64 `json:"period_return"` // percent
	MaxPrice     float64 `json:"max_price"`
	MinPrice     float64 `json:"min_price"`
	AvgVolume    int64   `json:"avg_volume"`
	DataPoints   int     `json:"data_points"`
}

// BuildChart decorates a (split-adjusted) bar series with SMA-20,
// SMA-50, daily returns and a rolling 20-day annualized volatility.
func BuildChart(bars []DailyPrice) []ChartPoint {
	closes := Closes(bars)

	var sma20, sma50 []float64
	if len(closes) >= 20 {
		sma20 = talib.Sma(closes, 20)
	}
	if len(closes) >= 50 {
		sma50 = talib.Sma(closes, 50)
	}

	points := make([]ChartPoint, len(bars))
	for i, bar := range bars {
		point := ChartPoint{DailyPrice: bar}

		if sma20 != nil && i >= 19 {
			v := round2(sma20[i])
			point.SMA20 = &v
		}
		if sma50 != nil && i >= 49 {
			v := round2(sma50[i])
			point.SMA50 = &v
		}
		if i > 0 && closes[i-1] != 0 {
			ret := round2((closes[i] - closes[i-1]) / closes[i-1] * 100)
			point.DailyReturn = &ret
		}
		if i >= 20 {
			window := formulas.DailyReturns(closes[i-20 : i+1])
			vol := round2(formulas.AnnualizedVolatility(window))
			point.Volatility = &vol
		}

		points[i] = point
	}
	return points
}

// Summarize computes summary statistics over a bar series.
func Summarize(bars []DailyPrice) ChartSummary {
	if len(bars) == 0 {
		return ChartSummary{}
	}

	closes := Closes(bars)
	first, last := closes[0], closes[len(closes)-1]

	periodReturn := 0.0
	if first > 0 {
		periodReturn = (last - first) / first * 100
	}

	maxPrice, minPrice := closes[0], closes[0]
	var volumeSum int64
	for _, bar := range bars {
		maxPrice = math.Max(maxPrice, bar.Close)
		minPrice = math.Min(minPrice, bar.Close)
		volumeSum += bar.Volume
	}

	return ChartSummary{
		LatestPrice:  round2(last),
		PeriodReturn: round2(periodReturn),
		MaxPrice:     round2(maxPrice),
		MinPrice:     round2(minPrice),
		AvgVolume:    volumeSum / int64(len(bars)),
		DataPoints:   len(bars),
	}
}

// Momentum returns the percent price change over the trailing window,
// or nil when the series is too short.
func Momentum(bars []DailyPrice, days int) *float64 {
	closes := Closes(bars)
	if len(closes) < days+1 {
		return nil
	}
	start := closes[len(closes)-days-1]
	if start == 0 {
		return nil
	}
	m := (closes[len(closes)-1] - start) / start * 100
	return &m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
