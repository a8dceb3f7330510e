package costbasis

import (
	"github.com/bistfolio/bistfolio/internal/modules/ledger"
)

// Lot is a quantity of shares acquired at a specific price and date,
// tracked until fully consumed by sells. Lots are ephemeral: they are
// recomputed from the transaction ledger on demand, never persisted.
type Lot struct {
	Symbol          string     `json:"symbol"`
	Quantity        float64    `json:"quantity"`
	UnitCost        float64    `json:"unit_cost"`
	AcquisitionDate ledger.Day `json:"acquisition_date"`
}

// SurvivingLots replays the transactions for one symbol and returns the
// FIFO lot queue remaining after all sells have consumed from the head
// (oldest first).
//
// Split and capital-increase shares enter the queue as zero-cost lots.
// This lowers the average cost per share instead of rescaling existing
// lots the way standard split accounting would; the behavior is kept
// as-is because downstream performance numbers were calibrated against
// it. See DESIGN.md.
func SurvivingLots(txs []ledger.Transaction, symbol string) []Lot {
	var queue []Lot

	for _, tx := range txs {
		if tx.Symbol != symbol {
			continue
		}

		switch tx.Type {
		case ledger.TypeBuy, ledger.TypeRightsIssue:
			queue = append(queue, Lot{
				Symbol:          symbol,
				Quantity:        tx.Quantity,
				UnitCost:        tx.Price,
				AcquisitionDate: tx.Date,
			})
		case ledger.TypeSplit, ledger.TypeCapitalIncrease:
			if tx.Quantity > 0 {
				queue = append(queue, Lot{
					Symbol:          symbol,
					Quantity:        tx.Quantity,
					UnitCost:        0,
					AcquisitionDate: tx.Date,
				})
			}
		case ledger.TypeSell:
			sellQty := tx.Quantity
			for sellQty > 0 && len(queue) > 0 {
				head := &queue[0]
				if head.Quantity > sellQty {
					head.Quantity -= sellQty
					sellQty = 0
				} else {
					sellQty -= head.Quantity
					queue = queue[1:]
				}
			}
		}
	}

	return queue
}

// CostBasisFIFO computes the total cost and average unit cost
// attributable to a current holding of currentQty shares, walking the
// surviving lot queue from the oldest lot.
//
// Pure function of the ledger: identical inputs always produce
// identical output.
func CostBasisFIFO(txs []ledger.Transaction, symbol string, currentQty float64) (totalCost, avgCost float64) {
	queue := SurvivingLots(txs, symbol)

	needed := currentQty
	covered := 0.0

	for _, lot := range queue {
		if needed <= 0 {
			break
		}
		take := lot.Quantity
		if take > needed {
			take = needed
		}
		totalCost += take * lot.UnitCost
		needed -= take
		covered += take
	}

	if covered > 0 {
		avgCost = totalCost / covered
	}
	return totalCost, avgCost
}

// FirstPurchaseDate returns the date of the earliest buy for the
// symbol, or a zero Day when the symbol was never bought.
func FirstPurchaseDate(txs []ledger.Transaction, symbol string) ledger.Day {
	for _, tx := range txs {
		if tx.Symbol == symbol && tx.Type == ledger.TypeBuy {
			return tx.Date
		}
	}
	return ledger.Day{}
}
