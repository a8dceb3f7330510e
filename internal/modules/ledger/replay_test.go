package ledger

import (
	"math"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) Day {
	return NewDay(y, m, d)
}

func tx(txType Type, symbol string, quantity, price float64, date Day) Transaction {
	return NewTransaction(txType, symbol, quantity, price, date)
}

func TestHoldingsAsOf(t *testing.T) {
	txs := []Transaction{
		tx(TypeDeposit, "", 10000, 0, day(2024, 1, 1)),
		tx(TypeBuy, "THYAO", 50, 100, day(2024, 1, 5)),
		tx(TypeBuy, "THYAO", 20, 110, day(2024, 2, 1)),
		tx(TypeSell, "THYAO", 30, 120, day(2024, 3, 1)),
		tx(TypeSplit, "GARAN", 10, 0, day(2024, 3, 15)),
	}

	tests := []struct {
		name     string
		asOf     Day
		expected map[string]float64
	}{
		{"before anything", day(2023, 12, 31), map[string]float64{}},
		{"after first buy", day(2024, 1, 5), map[string]float64{"THYAO": 50}},
		{"between buys", day(2024, 1, 31), map[string]float64{"THYAO": 50}},
		{"after sell", day(2024, 3, 1), map[string]float64{"THYAO": 40}},
		{"everything", day(2024, 12, 31), map[string]float64{"THYAO": 40, "GARAN": 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HoldingsAsOf(txs, tt.asOf)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d symbols, want %d: %v", len(got), len(tt.expected), got)
			}
			for symbol, qty := range tt.expected {
				if math.Abs(got[symbol]-qty) > 1e-9 {
					t.Errorf("%s = %v, want %v", symbol, got[symbol], qty)
				}
			}
		})
	}
}

func TestHoldingsBeforeIsExclusive(t *testing.T) {
	txs := []Transaction{
		tx(TypeBuy, "THYAO", 50, 100, day(2024, 1, 5)),
	}

	if got := HoldingsBefore(txs, day(2024, 1, 5))["THYAO"]; got != 0 {
		t.Errorf("same-day purchase counted, got %v", got)
	}
	if got := HoldingsBefore(txs, day(2024, 1, 6))["THYAO"]; got != 50 {
		t.Errorf("prior-day purchase = %v, want 50", got)
	}
}

func TestNegativeInventoryPropagates(t *testing.T) {
	txs := []Transaction{
		tx(TypeBuy, "THYAO", 10, 100, day(2024, 1, 1)),
		tx(TypeSell, "THYAO", 25, 100, day(2024, 1, 2)),
	}

	got := HoldingsAsOf(txs, day(2024, 1, 2))["THYAO"]
	if got != -15 {
		t.Errorf("oversell quantity = %v, want -15", got)
	}

	// Negative positions are never "held".
	if held := CurrentHoldings(txs, day(2024, 1, 2)); len(held) != 0 {
		t.Errorf("negative position reported as held: %v", held)
	}
}

func TestHoldingEpsilon(t *testing.T) {
	tests := []struct {
		name     string
		residual float64
		held     bool
	}{
		{"dust excluded", 0.0005, false},
		{"boundary excluded", 0.001, false},
		{"above epsilon included", 0.002, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs := []Transaction{
				tx(TypeBuy, "THYAO", 10, 100, day(2024, 1, 1)),
				tx(TypeSell, "THYAO", 10-tt.residual, 100, day(2024, 1, 2)),
			}
			held := CurrentHoldings(txs, day(2024, 1, 2))
			if _, ok := held["THYAO"]; ok != tt.held {
				t.Errorf("residual %v held = %v, want %v", tt.residual, ok, tt.held)
			}
		})
	}
}

func TestCashBalanceAsOf(t *testing.T) {
	txs := []Transaction{
		tx(TypeDeposit, "", 10000, 0, day(2024, 1, 1)),
		tx(TypeBuy, "THYAO", 50, 100, day(2024, 1, 5)),    // -5000
		tx(TypeSell, "THYAO", 20, 120, day(2024, 2, 1)),   // +2400
		tx(TypeDividend, "THYAO", 0, 300, day(2024, 2, 5)), // +300 total cash
		tx(TypeWithdrawal, "", 1000, 0, day(2024, 2, 10)),  // -1000
		tx(TypeRightsIssue, "THYAO", 10, 50, day(2024, 3, 1)), // -500
		tx(TypeSplit, "THYAO", 30, 0, day(2024, 3, 5)),     // no cash effect
	}

	if got := CashBalanceAsOf(txs, day(2024, 1, 5)); math.Abs(got-5000) > 1e-9 {
		t.Errorf("cash after buy = %v, want 5000", got)
	}
	if got := CashBalanceAsOf(txs, day(2024, 12, 31)); math.Abs(got-6200) > 1e-9 {
		t.Errorf("final cash = %v, want 6200", got)
	}
}

func TestHeldSymbolsSorted(t *testing.T) {
	txs := []Transaction{
		tx(TypeBuy, "TUPRS", 10, 100, day(2024, 1, 1)),
		tx(TypeBuy, "ASELS", 10, 100, day(2024, 1, 1)),
		tx(TypeBuy, "GARAN", 10, 100, day(2024, 1, 1)),
	}

	got := HeldSymbols(txs, day(2024, 1, 1))
	want := []string{"ASELS", "GARAN", "TUPRS"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("symbol[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		tx      Transaction
		wantErr bool
	}{
		{"valid buy", tx(TypeBuy, "THYAO", 10, 100, day(2024, 1, 1)), false},
		{"buy without symbol", tx(TypeBuy, "", 10, 100, day(2024, 1, 1)), true},
		{"buy with zero price", tx(TypeBuy, "THYAO", 10, 0, day(2024, 1, 1)), true},
		{"buy with negative quantity", tx(TypeBuy, "THYAO", -5, 100, day(2024, 1, 1)), true},
		{"valid deposit", tx(TypeDeposit, "", 1000, 0, day(2024, 1, 1)), false},
		{"deposit with symbol", tx(TypeDeposit, "THYAO", 1000, 0, day(2024, 1, 1)), true},
		{"withdrawal with zero quantity", tx(TypeWithdrawal, "", 0, 0, day(2024, 1, 1)), true},
		{"valid dividend", tx(TypeDividend, "THYAO", 0, 250, day(2024, 1, 1)), false},
		{"dividend negative cash", tx(TypeDividend, "THYAO", 0, -1, day(2024, 1, 1)), true},
		{"valid split", tx(TypeSplit, "THYAO", 100, 0, day(2024, 1, 1)), false},
		{"unknown type", tx(Type("merge"), "THYAO", 1, 0, day(2024, 1, 1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
