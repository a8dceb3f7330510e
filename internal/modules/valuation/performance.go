package valuation

import (
	"github.com/bistfolio/bistfolio/internal/modules/costbasis"
	"github.com/bistfolio/bistfolio/internal/modules/ledger"
	"github.com/bistfolio/bistfolio/pkg/formulas"
)

// PerformanceSincePurchase measures a position against the investor's
// actual purchase history: FIFO cost basis, unrealized P&L, days held
// and a CAGR annualized return. Degenerate arithmetic (zero cost basis,
// zero days held) yields a 0 annualized return, never an error.
func PerformanceSincePurchase(txs []ledger.Transaction, symbol string, currentPrice float64, asOf ledger.Day) (Performance, error) {
	quantity := ledger.CurrentHoldings(txs, asOf)[symbol]
	if quantity <= 0 {
		return Performance{}, ErrNotHeld
	}
	if currentPrice <= 0 {
		return Performance{}, ErrNoPrice
	}

	costBasis, avgPrice := costbasis.CostBasisFIFO(txs, symbol, quantity)
	currentValue := quantity * currentPrice

	returnAmount := currentValue - costBasis
	returnPercent := 0.0
	if costBasis > 0 {
		returnPercent = returnAmount / costBasis * 100
	}

	firstPurchase := costbasis.FirstPurchaseDate(txs, symbol)
	daysHeld := 0
	if !firstPurchase.IsZero() {
		daysHeld = firstPurchase.DaysUntil(asOf)
	}

	return Performance{
		Symbol:            symbol,
		Quantity:          quantity,
		CostBasis:         costBasis,
		AvgPurchasePrice:  avgPrice,
		CurrentPrice:      currentPrice,
		CurrentValue:      currentValue,
		ReturnAmount:      returnAmount,
		ReturnPercent:     returnPercent,
		FirstPurchaseDate: firstPurchase,
		DaysHeld:          daysHeld,
		AnnualizedReturn:  formulas.AnnualizedReturn(costBasis, currentValue, daysHeld),
	}, nil
}
