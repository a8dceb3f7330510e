package valuation

import (
	"math"

	"github.com/bistfolio/bistfolio/internal/modules/ledger"
	"github.com/bistfolio/bistfolio/internal/modules/marketdata"
)

// FXSymbol is the EUR/TRY rate tracked alongside equities.
const FXSymbol = "EURTRY=X"

// Timeline walks [start, end] one calendar day at a time and values the
// portfolio against as-of prices.
//
// Holdings and cash are seeded by replaying every transaction dated
// before start. Each day then applies that day's transactions, looks up
// the latest price at or before the day for every held symbol
// (non-trading days reuse the last known close), and emits a
// ValuationPoint with a per-symbol breakdown that sums to the total.
// The EUR value uses the as-of EUR/TRY rate, or 0 when none is known
// yet. Days where no held symbol has any price data at or before that
// date are skipped entirely, never zero-filled, so re-running the same
// range reproduces identical output.
func Timeline(txs []ledger.Transaction, prices marketdata.PriceSource, start, end ledger.Day) []ValuationPoint {
	holdings := make(map[string]float64)
	cash := 0.0
	txIndex := 0

	// Seed state from everything before the window.
	for txIndex < len(txs) && txs[txIndex].Date.Before(start) {
		applyTx(holdings, &cash, txs[txIndex])
		txIndex++
	}

	var points []ValuationPoint
	for day := start; !day.After(end); day = day.AddDays(1) {
		for txIndex < len(txs) && txs[txIndex].Date.Equal(day) {
			applyTx(holdings, &cash, txs[txIndex])
			txIndex++
		}

		perSymbol := make(map[string]float64)
		stockValue := 0.0
		priced := 0
		held := 0

		for symbol, qty := range holdings {
			if qty <= ledger.HoldingEpsilon {
				continue
			}
			held++
			price, ok := prices.AsOf(symbol, day)
			if !ok {
				continue
			}
			priced++
			value := qty * price
			perSymbol[symbol] = value
			stockValue += value
		}

		// No price data at or before this day for anything we hold:
		// skip rather than emit a misleading zero.
		if held > 0 && priced == 0 {
			continue
		}

		valueEUR := 0.0
		if rate, ok := prices.AsOf(FXSymbol, day); ok && rate > 0 {
			valueEUR = round2(stockValue / rate)
		}

		points = append(points, ValuationPoint{
			Date:       day,
			StockValue: stockValue,
			ValueEUR:   valueEUR,
			Cash:       round2(cash),
			PerSymbol:  perSymbol,
		})
	}

	return points
}

func applyTx(holdings map[string]float64, cash *float64, tx ledger.Transaction) {
	switch tx.Type {
	case ledger.TypeBuy, ledger.TypeRightsIssue:
		holdings[tx.Symbol] += tx.Quantity
	case ledger.TypeSell:
		holdings[tx.Symbol] -= tx.Quantity
	case ledger.TypeSplit, ledger.TypeCapitalIncrease:
		holdings[tx.Symbol] += tx.Quantity
	}
	*cash += ledger.CashEffect(tx)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
