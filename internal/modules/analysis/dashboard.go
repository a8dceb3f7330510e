package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/bistfolio/bistfolio/internal/modules/ledger"
	"github.com/bistfolio/bistfolio/internal/modules/valuation"
	"github.com/bistfolio/bistfolio/pkg/cache"
)

const dashboardCacheKey = "dashboard_metrics"

// Mover is a 30-day performance entry for the dashboard.
type Mover struct {
	Symbol    string  `json:"symbol"`
	ReturnPct float64 `json:"return_pct"`
	Value     float64 `json:"value"`
}

// DashboardMetrics is the at-a-glance portfolio summary.
type DashboardMetrics struct {
	Totals          valuation.PortfolioTotals `json:"totals"`
	HoldingsCount   int                       `json:"holdings_count"`
	BestPerformers  []Mover                   `json:"best_performers"`
	WorstPerformers []Mover                   `json:"worst_performers"`
	HealthScore     float64                   `json:"health_score"`
	Concentration   float64                   `json:"top3_concentration_pct"`
}

// Dashboard computes cached portfolio dashboard metrics.
type Dashboard struct {
	ledgerRepo *ledger.Repository
	valuations *valuation.Service
	cache      cache.Cache
	log        zerolog.Logger
}

// NewDashboard creates a dashboard service. The cache keeps repeated
// page loads from re-reading every history database; entries expire on
// the cache's default TTL.
func NewDashboard(ledgerRepo *ledger.Repository, valuations *valuation.Service, c cache.Cache, log zerolog.Logger) *Dashboard {
	return &Dashboard{
		ledgerRepo: ledgerRepo,
		valuations: valuations,
		cache:      c,
		log:        log.With().Str("service", "dashboard").Logger(),
	}
}

// Metrics returns the dashboard summary, serving from cache when fresh.
func (d *Dashboard) Metrics() (DashboardMetrics, error) {
	if cached, ok := d.cache.Get(dashboardCacheKey); ok {
		if metrics, ok := cached.(DashboardMetrics); ok {
			return metrics, nil
		}
	}

	metrics, err := d.compute()
	if err != nil {
		return DashboardMetrics{}, err
	}
	d.cache.Set(dashboardCacheKey, metrics)
	return metrics, nil
}

func (d *Dashboard) compute() (DashboardMetrics, error) {
	txs, err := d.ledgerRepo.List()
	if err != nil {
		return DashboardMetrics{}, fmt.Errorf("failed to load ledger: %w", err)
	}

	today := ledger.Today()
	held := ledger.CurrentHoldings(txs, today)
	symbols := ledger.HeldSymbols(txs, today)

	table, err := d.valuations.LoadPrices(symbols, today.AddDays(-35), today)
	if err != nil {
		return DashboardMetrics{}, err
	}

	summary, err := d.valuations.ProfitLoss()
	if err != nil {
		return DashboardMetrics{}, err
	}

	var movers []Mover
	monthAgo := today.AddDays(-30)
	for _, symbol := range symbols {
		latest, ok := table.Latest(symbol)
		if !ok {
			continue
		}
		past, ok := table.AsOf(symbol, monthAgo)
		if !ok || past <= 0 {
			continue
		}
		movers = append(movers, Mover{
			Symbol:    symbol,
			ReturnPct: round2((latest - past) / past * 100),
			Value:     round2(held[symbol] * latest),
		})
	}
	sort.Slice(movers, func(i, j int) bool { return movers[i].ReturnPct > movers[j].ReturnPct })

	metrics := DashboardMetrics{
		Totals:        summary.Totals,
		HoldingsCount: len(symbols),
	}
	if n := len(movers); n > 0 {
		top := 3
		if n < top {
			top = n
		}
		metrics.BestPerformers = movers[:top]
		worst := make([]Mover, top)
		copy(worst, movers[n-top:])
		sort.Slice(worst, func(i, j int) bool { return worst[i].ReturnPct < worst[j].ReturnPct })
		metrics.WorstPerformers = worst
	}

	metrics.HealthScore = healthScore(movers, len(symbols))
	metrics.Concentration = concentration(summary.Holdings, summary.Totals.ValueTRY)

	d.log.Debug().Int("holdings", len(symbols)).Float64("health", metrics.HealthScore).Msg("Dashboard metrics computed")
	return metrics, nil
}

// healthScore blends diversification (up to 40), the share of positions
// up over 30 days (up to 40) and average 30-day momentum (up to 20)
// into a 0-100 score.
func healthScore(movers []Mover, holdingsCount int) float64 {
	diversification := math.Min(float64(holdingsCount)*10, 40)

	if len(movers) == 0 {
		return round2(diversification)
	}

	var positive int
	var momentumSum float64
	for _, m := range movers {
		if m.ReturnPct > 0 {
			positive++
		}
		momentumSum += m.ReturnPct
	}
	breadth := float64(positive) / float64(len(movers)) * 40

	avgMomentum := momentumSum / float64(len(movers))
	momentum := math.Max(0, math.Min((avgMomentum+10)/20, 1)) * 20

	return round2(diversification + breadth + momentum)
}

// concentration is the share of portfolio value in the three largest
// positions.
func concentration(holdings []valuation.HoldingDetail, totalValue float64) float64 {
	if totalValue <= 0 {
		return 0
	}
	values := make([]float64, len(holdings))
	for i, h := range holdings {
		values[i] = h.CurrentValue
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(values)))

	top := 3
	if len(values) < top {
		top = len(values)
	}
	var sum float64
	for _, v := range values[:top] {
		sum += v
	}
	return round2(sum / totalValue * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
