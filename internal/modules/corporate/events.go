package corporate

import (
	"errors"
	"fmt"

	"github.com/bistfolio/bistfolio/internal/modules/ledger"
)

// ErrNoSharesHeld is returned when an event lands on a symbol with no
// position strictly before the event date.
var ErrNoSharesHeld = errors.New("no shares held before event date")

// EventKind enumerates percentage-expressed corporate actions.
type EventKind string

const (
	EventDividend        EventKind = "dividend"
	EventSplit           EventKind = "split"
	EventCapitalIncrease EventKind = "capital_increase"
)

// PercentEvent is a corporate action expressed as a percentage, the way
// BIST disclosures announce them (e.g. %150 bonus issue, %5 dividend).
type PercentEvent struct {
	Kind       EventKind  `json:"kind"`
	Symbol     string     `json:"symbol"`
	Date       ledger.Day `json:"date"`
	Percentage float64    `json:"percentage"`
}

// Apply converts a percentage event to a concrete ledger transaction.
//
// Shares are looked up strictly before the event date, so the event
// cannot apply to shares acquired on the event date itself.
//   - dividend: cash = shares * (pct / 100)
//   - split / capital increase: ratio = 1 + pct/100,
//     new shares = shares * (ratio - 1)
func Apply(txs []ledger.Transaction, event PercentEvent) (ledger.Transaction, error) {
	sharesHeld := ledger.HoldingsBefore(txs, event.Date)[event.Symbol]
	if sharesHeld <= 0 {
		return ledger.Transaction{}, fmt.Errorf("%w: %s on %s", ErrNoSharesHeld, event.Symbol, event.Date)
	}

	switch event.Kind {
	case EventDividend:
		totalCash := sharesHeld * (event.Percentage / 100)
		tx := ledger.NewTransaction(ledger.TypeDividend, event.Symbol, 0, totalCash, event.Date)
		tx.Note = fmt.Sprintf("Dividend (%.2f%%)", event.Percentage)
		return tx, nil

	case EventSplit, EventCapitalIncrease:
		ratio := 1 + event.Percentage/100
		newShares := sharesHeld * (ratio - 1)
		txType := ledger.TypeSplit
		if event.Kind == EventCapitalIncrease {
			txType = ledger.TypeCapitalIncrease
		}
		tx := ledger.NewTransaction(txType, event.Symbol, newShares, 0, event.Date)
		tx.Note = fmt.Sprintf("%s (%.2f-for-1)", event.Kind, ratio)
		return tx, nil
	}

	return ledger.Transaction{}, fmt.Errorf("unknown event kind %q", event.Kind)
}
