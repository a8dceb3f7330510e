package analysis

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bistfolio/bistfolio/internal/modules/ledger"
	"github.com/bistfolio/bistfolio/internal/modules/marketdata"
	"github.com/bistfolio/bistfolio/internal/modules/valuation"
)

// sectorWorkers caps concurrent sector lookups. The upstream source
// rate-limits aggressively, so two in flight is the safe ceiling.
const sectorWorkers = 2

// SectorSlice is one sector's share of the portfolio.
type SectorSlice struct {
	Sector   string   `json:"sector"`
	Value    float64  `json:"value"`
	Weight   float64  `json:"weight_pct"`
	Symbols  []string `json:"symbols"`
	Industry []string `json:"industries,omitempty"`
}

// SectorBreakdown is the portfolio grouped by sector.
type SectorBreakdown struct {
	Slices               []SectorSlice `json:"sectors"`
	SectorCount          int           `json:"sector_count"`
	DiversificationScore float64       `json:"diversification_score"`
	Unclassified         []string      `json:"unclassified,omitempty"`
}

// SectorAnalyzer groups holdings by sector using an external
// classification source.
type SectorAnalyzer struct {
	ledgerRepo *ledger.Repository
	valuations *valuation.Service
	sectors    marketdata.SectorProvider
	log        zerolog.Logger
}

// NewSectorAnalyzer creates a sector analyzer.
func NewSectorAnalyzer(ledgerRepo *ledger.Repository, valuations *valuation.Service, sectors marketdata.SectorProvider, log zerolog.Logger) *SectorAnalyzer {
	return &SectorAnalyzer{
		ledgerRepo: ledgerRepo,
		valuations: valuations,
		sectors:    sectors,
		log:        log.With().Str("service", "sector").Logger(),
	}
}

type sectorResult struct {
	symbol string
	info   marketdata.SectorInfo
	err    error
}

// Analyze classifies every held symbol and aggregates position values
// by sector. Lookups fan out over a bounded worker pool and results are
// merged only after all workers finish, so the breakdown is complete or
// the symbol is listed as unclassified.
func (a *SectorAnalyzer) Analyze() (SectorBreakdown, error) {
	txs, err := a.ledgerRepo.List()
	if err != nil {
		return SectorBreakdown{}, fmt.Errorf("failed to load ledger: %w", err)
	}

	today := ledger.Today()
	held := ledger.CurrentHoldings(txs, today)
	symbols := ledger.HeldSymbols(txs, today)

	table, err := a.valuations.LoadPrices(symbols, today.AddDays(-7), today)
	if err != nil {
		return SectorBreakdown{}, err
	}

	results := a.classify(symbols)

	type bucket struct {
		value      float64
		symbols    []string
		industries map[string]bool
	}
	buckets := map[string]*bucket{}
	var unclassified []string
	var totalValue float64

	for _, symbol := range symbols {
		price, ok := table.Latest(symbol)
		if !ok {
			continue
		}
		value := held[symbol] * price
		totalValue += value

		result := results[symbol]
		if result.err != nil || result.info.Sector == "" {
			unclassified = append(unclassified, symbol)
			continue
		}

		b := buckets[result.info.Sector]
		if b == nil {
			b = &bucket{industries: map[string]bool{}}
			buckets[result.info.Sector] = b
		}
		b.value += value
		b.symbols = append(b.symbols, symbol)
		if result.info.Industry != "" {
			b.industries[result.info.Industry] = true
		}
	}

	breakdown := SectorBreakdown{
		SectorCount:  len(buckets),
		Unclassified: unclassified,
	}
	for sector, b := range buckets {
		weight := 0.0
		if totalValue > 0 {
			weight = b.value / totalValue * 100
		}
		industries := make([]string, 0, len(b.industries))
		for industry := range b.industries {
			industries = append(industries, industry)
		}
		sort.Strings(industries)
		breakdown.Slices = append(breakdown.Slices, SectorSlice{
			Sector:   sector,
			Value:    round2(b.value),
			Weight:   round2(weight),
			Symbols:  b.symbols,
			Industry: industries,
		})
	}
	sort.Slice(breakdown.Slices, func(i, j int) bool {
		return breakdown.Slices[i].Value > breakdown.Slices[j].Value
	})
	breakdown.DiversificationScore = diversificationScore(len(buckets))

	return breakdown, nil
}

// classify runs sector lookups through the worker pool and returns the
// complete result set keyed by symbol.
func (a *SectorAnalyzer) classify(symbols []string) map[string]sectorResult {
	jobs := make(chan string)
	out := make(chan sectorResult, len(symbols))

	var wg sync.WaitGroup
	for i := 0; i < sectorWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range jobs {
				info, err := a.sectors.SectorInfo(symbol)
				out <- sectorResult{symbol: symbol, info: info, err: err}
			}
		}()
	}

	for _, symbol := range symbols {
		jobs <- symbol
	}
	close(jobs)
	wg.Wait()
	close(out)

	results := make(map[string]sectorResult, len(symbols))
	for result := range out {
		if result.err != nil {
			a.log.Warn().Err(result.err).Str("symbol", result.symbol).Msg("Sector lookup failed")
		}
		results[result.symbol] = result
	}
	return results
}

// diversificationScore is a coarse step function of distinct sectors.
func diversificationScore(sectorCount int) float64 {
	switch {
	case sectorCount >= 6:
		return 90
	case sectorCount >= 4:
		return 70
	case sectorCount >= 2:
		return 40
	default:
		return 0
	}
}
