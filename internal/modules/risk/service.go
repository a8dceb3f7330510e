package risk

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bistfolio/bistfolio/internal/modules/ledger"
	"github.com/bistfolio/bistfolio/internal/modules/marketdata"
	"github.com/bistfolio/bistfolio/internal/modules/scoring"
	"github.com/bistfolio/bistfolio/internal/modules/valuation"
)

// lookbackDays is how far back the return series for risk metrics
// reaches. Six months of trading days is enough for the 6M momentum
// window and stable volatility estimates.
const lookbackDays = 185

// Assessment bundles everything computed for one held symbol.
type Assessment struct {
	Symbol      string                         `json:"symbol"`
	Performance valuation.Performance          `json:"performance"`
	Profile     Profile                        `json:"risk_profile"`
	RiskScore   scoring.RiskScore              `json:"risk_score"`
	Grade       scoring.Grade                  `json:"grade"`
	Signal      scoring.Signal                 `json:"signal"`
	Position    scoring.PositionRecommendation `json:"position"`
}

// Report is the full portfolio risk assessment.
type Report struct {
	Assessments map[string]Assessment     `json:"assessments"`
	Skipped     map[string]string         `json:"skipped,omitempty"`
	Insights    scoring.PortfolioInsights `json:"portfolio_insights"`
}

// Service runs the risk pipeline over the whole portfolio.
type Service struct {
	ledgerRepo *ledger.Repository
	valuations *valuation.Service
	log        zerolog.Logger
}

// NewService creates a risk service.
func NewService(ledgerRepo *ledger.Repository, valuations *valuation.Service, log zerolog.Logger) *Service {
	return &Service{
		ledgerRepo: ledgerRepo,
		valuations: valuations,
		log:        log.With().Str("service", "risk").Logger(),
	}
}

// Assess runs the full pipeline for every held symbol: investor-relative
// returns, risk metrics, score, grade, signal and position sizing, then
// the portfolio rollup. Symbols with too little history are reported
// under Skipped instead of failing the whole run.
func (s *Service) Assess() (Report, error) {
	txs, err := s.ledgerRepo.List()
	if err != nil {
		return Report{}, fmt.Errorf("failed to load ledger: %w", err)
	}

	today := ledger.Today()
	symbols := ledger.HeldSymbols(txs, today)
	table, err := s.valuations.LoadPrices(symbols, today.AddDays(-lookbackDays), today)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Assessments: make(map[string]Assessment, len(symbols)),
		Skipped:     map[string]string{},
	}
	var summaries []scoring.PositionSummary

	for _, symbol := range symbols {
		assessment, err := s.assessSymbol(txs, symbol, table, today)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("Skipping symbol in risk assessment")
			report.Skipped[symbol] = err.Error()
			continue
		}
		report.Assessments[symbol] = assessment
		summaries = append(summaries, scoring.PositionSummary{
			Symbol:       symbol,
			CurrentValue: assessment.Performance.CurrentValue,
			ReturnPct:    assessment.Performance.ReturnPercent,
			Volatility:   assessment.Profile.Volatility,
			SharpeRatio:  assessment.Profile.SharpeRatio,
			RiskScore:    assessment.RiskScore.Score,
			GradePoints:  assessment.Grade.GradePoints,
			Action:       assessment.Signal.Action,
		})
	}

	report.Insights = scoring.ComputeInsights(summaries)
	if len(report.Skipped) == 0 {
		report.Skipped = nil
	}
	return report, nil
}

func (s *Service) assessSymbol(txs []ledger.Transaction, symbol string, table *marketdata.PriceTable, today ledger.Day) (Assessment, error) {
	price, ok := table.Latest(symbol)
	if !ok {
		return Assessment{}, fmt.Errorf("no stored price for %s", symbol)
	}

	perf, err := valuation.PerformanceSincePurchase(txs, symbol, price, today)
	if err != nil {
		return Assessment{}, err
	}

	// Split-adjusted closes since the first purchase drive the
	// investor-relative return series.
	points := table.Series(symbol)
	closes := make([]float64, 0, len(points))
	for _, p := range points {
		if !p.Date.Before(perf.FirstPurchaseDate) {
			closes = append(closes, p.Close)
		}
	}

	returns := UserRelativeReturns(closes, perf.AvgPurchasePrice)
	profile, err := ComputeProfile(returns, perf.AnnualizedReturn)
	if err != nil {
		return Assessment{}, err
	}

	momentum := 0.0
	if m := momentumFromCloses(closes, 126); m != nil {
		momentum = *m
	}

	inputs := scoring.RiskInputs{
		Volatility:   profile.Volatility,
		SharpeRatio:  profile.SharpeRatio,
		MaxDrawdown:  profile.MaxDrawdown,
		AnnualReturn: profile.AnnualizedReturn,
		Momentum6M:   momentum,
	}
	riskScore := scoring.ComputeRiskScore(inputs)
	grade := scoring.ComputeGrade(inputs)
	signal := scoring.ComputeSignal(scoring.SignalInputs{
		ReturnPercent: perf.ReturnPercent,
		SharpeRatio:   profile.SharpeRatio,
		Volatility:    profile.Volatility,
		MaxDrawdown:   profile.MaxDrawdown,
		DaysHeld:      perf.DaysHeld,
		RiskScore:     riskScore.Score,
		GradePoints:   grade.GradePoints,
		Momentum6M:    momentum,
	})

	return Assessment{
		Symbol:      symbol,
		Performance: perf,
		Profile:     profile,
		RiskScore:   riskScore,
		Grade:       grade,
		Signal:      signal,
		Position:    scoring.RecommendPosition(riskScore.Score, perf.ReturnPercent, profile.Volatility),
	}, nil
}

// momentumFromCloses measures the trailing percent change over the
// window, or nil when the series is too short.
func momentumFromCloses(closes []float64, days int) *float64 {
	if len(closes) < days+1 {
		return nil
	}
	start := closes[len(closes)-days-1]
	if start == 0 {
		return nil
	}
	m := (closes[len(closes)-1] - start) / start * 100
	return &m
}
