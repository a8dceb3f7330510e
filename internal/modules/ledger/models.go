package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// DateFormat is the canonical calendar-day format used across the engine.
const DateFormat = "2006-01-02"

// Type enumerates transaction types.
type Type string

const (
	TypeBuy             Type = "buy"
	TypeSell            Type = "sell"
	TypeDeposit         Type = "deposit"
	TypeWithdrawal      Type = "withdrawal"
	TypeDividend        Type = "dividend"
	TypeSplit           Type = "split"
	TypeCapitalIncrease Type = "capital_increase"
	TypeRightsIssue     Type = "rights_issue"
)

// Transaction is an immutable ledger fact.
//
// Field conventions inherited from the transaction schema:
//   - Price is in the transaction's native currency.
//   - For dividends, Price holds the total cash amount, not per-share.
//   - For splits and capital increases, Quantity holds the net new
//     shares added, not a ratio.
type Transaction struct {
	ID        string  `json:"id"`
	Type      Type    `json:"type"`
	Symbol    string  `json:"symbol,omitempty"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price,omitempty"`
	Date      Day     `json:"date"`
	Currency  string  `json:"currency"`   // TRY, USD, EUR
	AssetType string  `json:"asset_type"` // STOCK, FUND
	Note      string  `json:"note,omitempty"`
}

// NewTransaction builds a transaction with a fresh ID and TRY/STOCK defaults.
func NewTransaction(txType Type, symbol string, quantity, price float64, date Day) Transaction {
	return Transaction{
		ID:        uuid.NewString(),
		Type:      txType,
		Symbol:    symbol,
		Quantity:  quantity,
		Price:     price,
		Date:      date,
		Currency:  "TRY",
		AssetType: "STOCK",
	}
}

// Validate checks the per-type invariants.
func (t Transaction) Validate() error {
	switch t.Type {
	case TypeBuy:
		if t.Symbol == "" || t.Quantity <= 0 {
			return fmt.Errorf("buy requires symbol and positive quantity")
		}
		if t.Price <= 0 {
			return fmt.Errorf("buy requires positive price")
		}
	case TypeSell, TypeRightsIssue:
		if t.Symbol == "" || t.Quantity <= 0 {
			return fmt.Errorf("%s requires symbol and positive quantity", t.Type)
		}
	case TypeDeposit, TypeWithdrawal:
		if t.Quantity <= 0 {
			return fmt.Errorf("%s requires positive quantity", t.Type)
		}
		if t.Symbol != "" {
			return fmt.Errorf("%s must not carry a symbol", t.Type)
		}
	case TypeDividend:
		if t.Symbol == "" {
			return fmt.Errorf("dividend requires symbol")
		}
		if t.Price < 0 {
			return fmt.Errorf("dividend cash amount must not be negative")
		}
	case TypeSplit, TypeCapitalIncrease:
		if t.Symbol == "" || t.Quantity < 0 {
			return fmt.Errorf("%s requires symbol and non-negative quantity", t.Type)
		}
	default:
		return fmt.Errorf("unknown transaction type %q", t.Type)
	}
	return nil
}

// AddsShares reports whether the transaction increases share quantity.
func (t Transaction) AddsShares() bool {
	switch t.Type {
	case TypeBuy, TypeSplit, TypeCapitalIncrease, TypeRightsIssue:
		return true
	}
	return false
}
