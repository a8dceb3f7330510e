package valuation

import (
	"errors"

	"github.com/bistfolio/bistfolio/internal/modules/ledger"
)

// ErrNotHeld is returned when a performance query targets a symbol with
// no current position.
var ErrNotHeld = errors.New("symbol not currently held")

// ErrNoPrice is returned when no current price is available.
var ErrNoPrice = errors.New("no current price available")

// ValuationPoint is the portfolio value on one calendar day.
// PerSymbol always sums to StockValue (within floating tolerance).
type ValuationPoint struct {
	Date       ledger.Day         `json:"date"`
	StockValue float64            `json:"value_try"`
	ValueEUR   float64            `json:"value_eur"`
	Cash       float64            `json:"cash"`
	PerSymbol  map[string]float64 `json:"per_symbol"`
}

// Performance describes a position measured against the investor's own
// purchase history rather than market history.
type Performance struct {
	Symbol            string     `json:"symbol"`
	Quantity          float64    `json:"quantity"`
	CostBasis         float64    `json:"cost_basis"`
	AvgPurchasePrice  float64    `json:"average_purchase_price"`
	CurrentPrice      float64    `json:"current_price"`
	CurrentValue      float64    `json:"current_value"`
	ReturnAmount      float64    `json:"return_amount"`
	ReturnPercent     float64    `json:"return_percentage"`
	FirstPurchaseDate ledger.Day `json:"first_purchase_date"`
	DaysHeld          int        `json:"days_held"`
	AnnualizedReturn  float64    `json:"annualized_return"`
}

// HoldingDetail is one row of the profit/loss summary.
type HoldingDetail struct {
	Symbol        string  `json:"symbol"`
	Quantity      float64 `json:"quantity"`
	CurrentPrice  float64 `json:"current_price"`
	CostBasis     float64 `json:"cost_basis"`
	AvgCost       float64 `json:"avg_cost"`
	CurrentValue  float64 `json:"current_value"`
	ProfitLoss    float64 `json:"profit_loss"`
	ProfitLossPct float64 `json:"profit_loss_pct"`
}

// PortfolioTotals aggregates the profit/loss summary across holdings.
type PortfolioTotals struct {
	ValueTRY      float64 `json:"total_value_try"`
	CostTRY       float64 `json:"total_cost_try"`
	ProfitLossTRY float64 `json:"total_profit_loss_try"`
	ValueEUR      float64 `json:"total_value_eur"`
	ValueUSD      float64 `json:"total_value_usd"`
}

// ProfitLossSummary is the exposed holdings + totals artifact.
type ProfitLossSummary struct {
	Holdings []HoldingDetail `json:"holdings"`
	Totals   PortfolioTotals `json:"totals"`
}
