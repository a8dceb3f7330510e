package scheduler

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/bistfolio/bistfolio/internal/modules/ledger"
	"github.com/bistfolio/bistfolio/internal/modules/marketdata"
	"github.com/bistfolio/bistfolio/internal/modules/valuation"
)

// HistoryRefreshJob pulls daily bars for every held symbol plus the FX
// pairs into the per-symbol history databases. Incremental: each symbol
// resumes from its last stored bar.
type HistoryRefreshJob struct {
	log         zerolog.Logger
	ledgerRepo  *ledger.Repository
	history     *marketdata.HistoryDB
	provider    marketdata.HistoryProvider
	marketHours *MarketHoursService
	running     atomic.Bool
}

// NewHistoryRefreshJob creates a history refresh job
func NewHistoryRefreshJob(ledgerRepo *ledger.Repository, history *marketdata.HistoryDB, provider marketdata.HistoryProvider, marketHours *MarketHoursService, log zerolog.Logger) *HistoryRefreshJob {
	return &HistoryRefreshJob{
		log:         log.With().Str("job", "history_refresh").Logger(),
		ledgerRepo:  ledgerRepo,
		history:     history,
		provider:    provider,
		marketHours: marketHours,
	}
}

// Name returns the job name
func (j *HistoryRefreshJob) Name() string {
	return "history_refresh"
}

// Run refreshes price history for all tracked symbols
func (j *HistoryRefreshJob) Run() error {
	if !j.running.CompareAndSwap(false, true) {
		j.log.Warn().Msg("History refresh already running, skipping")
		return nil
	}
	defer j.running.Store(false)

	txs, err := j.ledgerRepo.List()
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	if len(txs) == 0 {
		j.log.Debug().Msg("Empty ledger, nothing to refresh")
		return nil
	}

	if j.marketHours.IsMarketOpen() {
		j.log.Debug().Msg("Market open, latest bar may be partial and will be re-fetched")
	}

	today := ledger.Today()
	symbols := append(ledger.HeldSymbols(txs, today), valuation.FXSymbol, valuation.USDSymbol)

	startTime := time.Now()
	var failures int
	for _, symbol := range symbols {
		if err := j.refreshSymbol(symbol, txs[0].Date, today); err != nil {
			j.log.Warn().Err(err).Str("symbol", symbol).Msg("Refresh failed for symbol")
			failures++
		}
	}

	j.log.Info().
		Int("symbols", len(symbols)).
		Int("failures", failures).
		Dur("duration", time.Since(startTime)).
		Msg("History refresh completed")

	if failures == len(symbols) {
		return fmt.Errorf("history refresh failed for all %d symbols", failures)
	}
	return nil
}

func (j *HistoryRefreshJob) refreshSymbol(symbol string, earliest, today ledger.Day) error {
	start := earliest
	if last, ok, err := j.history.LastDate(symbol); err != nil {
		return err
	} else if ok {
		// Re-fetch the last stored day too; a bar saved while the
		// market was open is partial and the upsert overwrites it.
		start = last
	}

	bars, err := j.provider.FetchDaily(symbol, start, today)
	if err != nil {
		if err == marketdata.ErrNoPriceData {
			return nil
		}
		return err
	}
	return j.history.SaveDailyPrices(symbol, bars)
}
