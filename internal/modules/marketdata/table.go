package marketdata

import (
	"sort"

	"github.com/bistfolio/bistfolio/internal/modules/ledger"
)

// PriceTable is an immutable in-memory (symbol, date) -> close lookup
// with as-of semantics. It is the snapshot the engine computes against;
// building one from fresh data is the collaborator's job.
type PriceTable struct {
	series map[string][]ClosePoint
}

// NewPriceTable builds a table from per-symbol close series. Each
// series is sorted by date; later duplicates of the same day win.
func NewPriceTable(series map[string][]ClosePoint) *PriceTable {
	table := &PriceTable{series: make(map[string][]ClosePoint, len(series))}
	for symbol, points := range series {
		sorted := make([]ClosePoint, len(points))
		copy(sorted, points)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Date.Before(sorted[j].Date)
		})
		table.series[symbol] = sorted
	}
	return table
}

// FromBars builds a table from OHLCV history.
func FromBars(bars map[string][]DailyPrice) *PriceTable {
	series := make(map[string][]ClosePoint, len(bars))
	for symbol, symbolBars := range bars {
		points := make([]ClosePoint, len(symbolBars))
		for i, bar := range symbolBars {
			points[i] = ClosePoint{Date: bar.Date, Close: bar.Close}
		}
		series[symbol] = points
	}
	return NewPriceTable(series)
}

// AsOf returns the latest close at or before day. The second return is
// false when the symbol has no data point at or before that day.
func (t *PriceTable) AsOf(symbol string, day ledger.Day) (float64, bool) {
	points := t.series[symbol]
	if len(points) == 0 {
		return 0, false
	}

	// First index strictly after day; the answer sits just before it.
	idx := sort.Search(len(points), func(i int) bool {
		return points[i].Date.After(day)
	})
	if idx == 0 {
		return 0, false
	}
	return points[idx-1].Close, true
}

// Latest returns the most recent close for the symbol.
func (t *PriceTable) Latest(symbol string) (float64, bool) {
	points := t.series[symbol]
	if len(points) == 0 {
		return 0, false
	}
	return points[len(points)-1].Close, true
}

// LatestRate implements RateSource over a table that carries FX symbols
// (e.g. EURTRY=X) alongside equities.
func (t *PriceTable) LatestRate(base, quote string) (float64, bool) {
	return t.Latest(base + quote + "=X")
}

// Symbols returns the sorted symbols present in the table.
func (t *PriceTable) Symbols() []string {
	symbols := make([]string, 0, len(t.series))
	for symbol := range t.series {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Series returns the sorted close series for the symbol. The returned
// slice is shared; callers must not mutate it.
func (t *PriceTable) Series(symbol string) []ClosePoint {
	return t.series[symbol]
}

// Has reports whether the table holds any data for the symbol.
func (t *PriceTable) Has(symbol string) bool {
	return len(t.series[symbol]) > 0
}
