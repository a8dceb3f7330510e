package valuation

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bistfolio/bistfolio/internal/modules/ledger"
	"github.com/bistfolio/bistfolio/internal/modules/marketdata"
)

func day(y int, m time.Month, d int) ledger.Day {
	return ledger.NewDay(y, m, d)
}

func tx(txType ledger.Type, symbol string, quantity, price float64, date ledger.Day) ledger.Transaction {
	return ledger.NewTransaction(txType, symbol, quantity, price, date)
}

func priceTable(series map[string][]marketdata.ClosePoint) *marketdata.PriceTable {
	return marketdata.NewPriceTable(series)
}

func TestTimelineBasicScenario(t *testing.T) {
	txs := []ledger.Transaction{
		tx(ledger.TypeDeposit, "", 10000, 0, day(2024, 1, 1)),
		tx(ledger.TypeBuy, "THYAO", 50, 100, day(2024, 1, 5)),
	}
	prices := priceTable(map[string][]marketdata.ClosePoint{
		"THYAO": {
			{Date: day(2024, 1, 5), Close: 100},
			{Date: day(2024, 1, 10), Close: 120},
		},
	})

	points := Timeline(txs, prices, day(2024, 1, 10), day(2024, 1, 10))
	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}

	p := points[0]
	if math.Abs(p.StockValue-6000) > 1e-9 {
		t.Errorf("stock value = %v, want 6000", p.StockValue)
	}
	if math.Abs(p.Cash-5000) > 1e-9 {
		t.Errorf("cash = %v, want 5000", p.Cash)
	}
	if math.Abs(p.PerSymbol["THYAO"]-6000) > 1e-9 {
		t.Errorf("per-symbol value = %v, want 6000", p.PerSymbol["THYAO"])
	}
}

func TestTimelineForwardFillsNonTradingDays(t *testing.T) {
	txs := []ledger.Transaction{
		tx(ledger.TypeBuy, "THYAO", 10, 100, day(2024, 1, 5)),
	}
	// Friday close only; the weekend reuses it.
	prices := priceTable(map[string][]marketdata.ClosePoint{
		"THYAO": {{Date: day(2024, 1, 5), Close: 100}},
	})

	points := Timeline(txs, prices, day(2024, 1, 5), day(2024, 1, 7))
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	for _, p := range points {
		if math.Abs(p.StockValue-1000) > 1e-9 {
			t.Errorf("%s value = %v, want 1000", p.Date, p.StockValue)
		}
	}
}

func TestTimelineSkipsUnpricedDays(t *testing.T) {
	txs := []ledger.Transaction{
		tx(ledger.TypeBuy, "THYAO", 10, 100, day(2024, 1, 5)),
	}
	prices := priceTable(map[string][]marketdata.ClosePoint{
		"THYAO": {{Date: day(2024, 1, 8), Close: 100}},
	})

	// Days 5-7 have no price at or before them: skipped, not zeroed.
	points := Timeline(txs, prices, day(2024, 1, 5), day(2024, 1, 8))
	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}
	if !points[0].Date.Equal(day(2024, 1, 8)) {
		t.Errorf("point date = %s, want 2024-01-08", points[0].Date)
	}
}

func TestTimelineIdempotent(t *testing.T) {
	txs := []ledger.Transaction{
		tx(ledger.TypeDeposit, "", 20000, 0, day(2024, 1, 1)),
		tx(ledger.TypeBuy, "THYAO", 50, 100, day(2024, 1, 5)),
		tx(ledger.TypeBuy, "GARAN", 100, 45, day(2024, 1, 8)),
		tx(ledger.TypeSell, "THYAO", 20, 110, day(2024, 1, 15)),
	}
	prices := priceTable(map[string][]marketdata.ClosePoint{
		"THYAO": {
			{Date: day(2024, 1, 5), Close: 100},
			{Date: day(2024, 1, 10), Close: 105},
			{Date: day(2024, 1, 15), Close: 110},
		},
		"GARAN": {
			{Date: day(2024, 1, 8), Close: 45},
			{Date: day(2024, 1, 15), Close: 48},
		},
		FXSymbol: {
			{Date: day(2024, 1, 5), Close: 33.5},
		},
	})

	first := Timeline(txs, prices, day(2024, 1, 1), day(2024, 1, 20))
	second := Timeline(txs, prices, day(2024, 1, 1), day(2024, 1, 20))
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different timelines")
	}
}

func TestTimelineBreakdownSumsToTotal(t *testing.T) {
	txs := []ledger.Transaction{
		tx(ledger.TypeBuy, "THYAO", 33.7, 101.3, day(2024, 1, 5)),
		tx(ledger.TypeBuy, "GARAN", 120.15, 44.85, day(2024, 1, 5)),
	}
	prices := priceTable(map[string][]marketdata.ClosePoint{
		"THYAO": {{Date: day(2024, 1, 5), Close: 103.77}},
		"GARAN": {{Date: day(2024, 1, 5), Close: 46.13}},
	})

	points := Timeline(txs, prices, day(2024, 1, 5), day(2024, 1, 9))
	for _, p := range points {
		sum := 0.0
		for _, v := range p.PerSymbol {
			sum += v
		}
		if math.Abs(sum-p.StockValue) > 1e-6 {
			t.Errorf("%s breakdown sum %v != total %v", p.Date, sum, p.StockValue)
		}
	}
}

func TestTimelineMidWindowPurchase(t *testing.T) {
	txs := []ledger.Transaction{
		tx(ledger.TypeDeposit, "", 5000, 0, day(2024, 1, 1)),
		tx(ledger.TypeBuy, "THYAO", 10, 100, day(2024, 1, 10)),
	}
	prices := priceTable(map[string][]marketdata.ClosePoint{
		"THYAO": {{Date: day(2024, 1, 10), Close: 100}},
	})

	points := Timeline(txs, prices, day(2024, 1, 9), day(2024, 1, 10))
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if points[0].StockValue != 0 || math.Abs(points[0].Cash-5000) > 1e-9 {
		t.Errorf("pre-purchase day = %+v, want zero stock and 5000 cash", points[0])
	}
	if math.Abs(points[1].StockValue-1000) > 1e-9 || math.Abs(points[1].Cash-4000) > 1e-9 {
		t.Errorf("purchase day = %+v, want 1000 stock and 4000 cash", points[1])
	}
}

func TestPerformanceSincePurchase(t *testing.T) {
	txs := []ledger.Transaction{
		tx(ledger.TypeBuy, "THYAO", 50, 100, day(2024, 1, 5)),
	}

	perf, err := PerformanceSincePurchase(txs, "THYAO", 120, day(2024, 1, 10))
	require.NoError(t, err)
	assert.InDelta(t, 5000, perf.CostBasis, 1e-9)
	assert.InDelta(t, 100, perf.AvgPurchasePrice, 1e-9)
	assert.InDelta(t, 1000, perf.ReturnAmount, 1e-9)
	assert.InDelta(t, 20, perf.ReturnPercent, 1e-9)
	assert.Equal(t, 5, perf.DaysHeld)
	assert.True(t, perf.FirstPurchaseDate.Equal(day(2024, 1, 5)))
}

func TestPerformanceErrors(t *testing.T) {
	txs := []ledger.Transaction{
		tx(ledger.TypeBuy, "THYAO", 50, 100, day(2024, 1, 5)),
	}

	_, err := PerformanceSincePurchase(txs, "GARAN", 50, day(2024, 2, 1))
	assert.ErrorIs(t, err, ErrNotHeld)

	_, err = PerformanceSincePurchase(txs, "THYAO", 0, day(2024, 2, 1))
	assert.ErrorIs(t, err, ErrNoPrice)
}
