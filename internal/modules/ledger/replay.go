package ledger

import "sort"

// HoldingEpsilon is the minimum replayed quantity for a symbol to count
// as currently held. Quantities at or below it are floating-point dust
// left behind by fractional sells.
const HoldingEpsilon = 1e-3

// HoldingsAsOf replays the ledger and returns share quantities per
// symbol for all transactions dated on or before asOf.
//
// Sells that exceed the tracked quantity are not rejected: the quantity
// goes negative, which callers must treat as a data-quality signal.
func HoldingsAsOf(txs []Transaction, asOf Day) map[string]float64 {
	holdings := make(map[string]float64)
	for _, tx := range txs {
		if tx.Date.After(asOf) {
			continue
		}
		applyShares(holdings, tx)
	}
	return holdings
}

// HoldingsBefore replays the ledger strictly before day (exclusive), so
// a corporate action cannot apply to shares acquired on the event date.
func HoldingsBefore(txs []Transaction, day Day) map[string]float64 {
	holdings := make(map[string]float64)
	for _, tx := range txs {
		if !tx.Date.Before(day) {
			continue
		}
		applyShares(holdings, tx)
	}
	return holdings
}

// CashBalanceAsOf replays the cash effect of all transactions dated on
// or before asOf.
func CashBalanceAsOf(txs []Transaction, asOf Day) float64 {
	cash := 0.0
	for _, tx := range txs {
		if tx.Date.After(asOf) {
			continue
		}
		cash += CashEffect(tx)
	}
	return cash
}

// CurrentHoldings returns the symbols held as of the given day with
// their quantities, excluding positions at or below HoldingEpsilon.
func CurrentHoldings(txs []Transaction, asOf Day) map[string]float64 {
	held := make(map[string]float64)
	for symbol, qty := range HoldingsAsOf(txs, asOf) {
		if qty > HoldingEpsilon {
			held[symbol] = qty
		}
	}
	return held
}

// HeldSymbols returns the sorted symbols of CurrentHoldings.
func HeldSymbols(txs []Transaction, asOf Day) []string {
	held := CurrentHoldings(txs, asOf)
	symbols := make([]string, 0, len(held))
	for symbol := range held {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// CashEffect returns the signed cash impact of a single transaction.
func CashEffect(tx Transaction) float64 {
	switch tx.Type {
	case TypeBuy, TypeRightsIssue:
		return -tx.Quantity * tx.Price
	case TypeSell:
		return tx.Quantity * tx.Price
	case TypeDeposit:
		return tx.Quantity
	case TypeWithdrawal:
		return -tx.Quantity
	case TypeDividend:
		// Price holds the total cash amount for dividends.
		return tx.Price
	}
	return 0
}

func applyShares(holdings map[string]float64, tx Transaction) {
	if tx.Symbol == "" {
		return
	}
	switch tx.Type {
	case TypeBuy, TypeSplit, TypeCapitalIncrease, TypeRightsIssue:
		holdings[tx.Symbol] += tx.Quantity
	case TypeSell:
		holdings[tx.Symbol] -= tx.Quantity
	}
}
