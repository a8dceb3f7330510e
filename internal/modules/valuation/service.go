package valuation

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bistfolio/bistfolio/internal/modules/corporate"
	"github.com/bistfolio/bistfolio/internal/modules/costbasis"
	"github.com/bistfolio/bistfolio/internal/modules/ledger"
	"github.com/bistfolio/bistfolio/internal/modules/marketdata"
)

// USDSymbol is the USD/TRY rate tracked alongside equities.
const USDSymbol = "USDTRY=X"

// Service orchestrates valuation queries over the ledger and stored
// price history.
type Service struct {
	ledgerRepo *ledger.Repository
	history    *marketdata.HistoryDB
	log        zerolog.Logger
}

// NewService creates a valuation service.
func NewService(ledgerRepo *ledger.Repository, history *marketdata.HistoryDB, log zerolog.Logger) *Service {
	return &Service{
		ledgerRepo: ledgerRepo,
		history:    history,
		log:        log.With().Str("service", "valuation").Logger(),
	}
}

// Timeline produces the daily valuation curve for [start, end].
func (s *Service) Timeline(start, end ledger.Day) ([]ValuationPoint, error) {
	txs, err := s.ledgerRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	if len(txs) == 0 {
		return nil, nil
	}

	symbols := ledger.HeldSymbols(txs, end)
	table, err := s.LoadPrices(append(symbols, FXSymbol), txs[0].Date, end)
	if err != nil {
		return nil, err
	}

	return Timeline(txs, table, start, end), nil
}

// Holdings returns current share quantities per held symbol.
func (s *Service) Holdings() (map[string]float64, error) {
	txs, err := s.ledgerRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return ledger.CurrentHoldings(txs, ledger.Today()), nil
}

// PerformanceFor measures one held symbol against its purchase history,
// using the latest stored close.
func (s *Service) PerformanceFor(symbol string) (Performance, error) {
	txs, err := s.ledgerRepo.List()
	if err != nil {
		return Performance{}, fmt.Errorf("failed to load ledger: %w", err)
	}

	today := ledger.Today()
	table, err := s.LoadPrices([]string{symbol}, today.AddDays(-7), today)
	if err != nil {
		return Performance{}, err
	}

	price, _ := table.Latest(symbol)
	return PerformanceSincePurchase(txs, symbol, price, today)
}

// ProfitLoss builds the holdings summary with per-symbol FIFO cost
// basis and portfolio totals in TRY, EUR and USD.
func (s *Service) ProfitLoss() (ProfitLossSummary, error) {
	txs, err := s.ledgerRepo.List()
	if err != nil {
		return ProfitLossSummary{}, fmt.Errorf("failed to load ledger: %w", err)
	}

	today := ledger.Today()
	held := ledger.CurrentHoldings(txs, today)
	symbols := ledger.HeldSymbols(txs, today)

	table, err := s.LoadPrices(append(symbols, FXSymbol, USDSymbol), today.AddDays(-7), today)
	if err != nil {
		return ProfitLossSummary{}, err
	}

	summary := ProfitLossSummary{}
	for _, symbol := range symbols {
		quantity := held[symbol]
		price, ok := table.Latest(symbol)
		if !ok {
			s.log.Warn().Str("symbol", symbol).Msg("No price for held symbol, skipping from summary")
			continue
		}

		cost, avgCost := costbasis.CostBasisFIFO(txs, symbol, quantity)
		value := quantity * price
		pl := value - cost
		plPct := 0.0
		if cost > 0 {
			plPct = pl / cost * 100
		}

		summary.Holdings = append(summary.Holdings, HoldingDetail{
			Symbol:        symbol,
			Quantity:      quantity,
			CurrentPrice:  price,
			CostBasis:     round2(cost),
			AvgCost:       round2(avgCost),
			CurrentValue:  round2(value),
			ProfitLoss:    round2(pl),
			ProfitLossPct: round2(plPct),
		})
		summary.Totals.ValueTRY += value
		summary.Totals.CostTRY += cost
	}

	summary.Totals.ProfitLossTRY = summary.Totals.ValueTRY - summary.Totals.CostTRY
	if rate, ok := table.LatestRate("EUR", "TRY"); ok && rate > 0 {
		summary.Totals.ValueEUR = round2(summary.Totals.ValueTRY / rate)
	}
	if rate, ok := table.LatestRate("USD", "TRY"); ok && rate > 0 {
		summary.Totals.ValueUSD = round2(summary.Totals.ValueTRY / rate)
	}
	summary.Totals.ValueTRY = round2(summary.Totals.ValueTRY)
	summary.Totals.CostTRY = round2(summary.Totals.CostTRY)
	summary.Totals.ProfitLossTRY = round2(summary.Totals.ProfitLossTRY)

	return summary, nil
}

// LoadPrices loads stored history for the symbols, applies known split
// adjustments and returns an as-of price table. Symbols with no stored
// history are skipped rather than fatal.
func (s *Service) LoadPrices(symbols []string, start, end ledger.Day) (*marketdata.PriceTable, error) {
	bars := make(map[string][]marketdata.DailyPrice, len(symbols))
	for _, symbol := range symbols {
		symbolBars, err := s.history.GetDailyPrices(symbol, start, end)
		if err != nil {
			if err == marketdata.ErrNoPriceData {
				continue
			}
			return nil, err
		}
		bars[symbol] = corporate.AdjustForKnownSplits(symbol, symbolBars)
	}
	return marketdata.FromBars(bars), nil
}
