package scoring

// PositionSummary is the slice of a single assessed position the
// portfolio aggregator needs.
type PositionSummary struct {
	Symbol       string
	CurrentValue float64
	ReturnPct    float64
	Volatility   float64
	SharpeRatio  float64
	RiskScore    int
	GradePoints  float64
	Action       Action
}

// PortfolioInsights aggregates per-position assessments into a
// portfolio-level view.
type PortfolioInsights struct {
	WeightedReturn     float64        `json:"weighted_return"`
	WeightedVolatility float64        `json:"weighted_volatility"`
	AverageSharpe      float64        `json:"average_sharpe"`
	PortfolioGrade     string         `json:"portfolio_grade"`
	ActionCounts       map[Action]int `json:"action_counts"`
	HighRiskExposure   float64        `json:"high_risk_exposure_pct"`
	HighRiskLevel      string         `json:"high_risk_level"`
	Strategy           string         `json:"strategy"`
}

// ComputeInsights rolls per-position assessments up to the portfolio.
// Returns and volatility are value-weighted; Sharpe is a plain average
// since weighting a ratio by value has no clean interpretation.
func ComputeInsights(positions []PositionSummary) PortfolioInsights {
	insights := PortfolioInsights{ActionCounts: map[Action]int{}}
	if len(positions) == 0 {
		insights.PortfolioGrade = "N/A"
		insights.HighRiskLevel = "LOW"
		insights.Strategy = "No assessed positions"
		return insights
	}

	var totalValue, highRiskValue, sharpeSum, gradeSum float64
	for _, p := range positions {
		totalValue += p.CurrentValue
		sharpeSum += p.SharpeRatio
		gradeSum += p.GradePoints
		insights.ActionCounts[p.Action]++
		if p.RiskScore < 40 {
			highRiskValue += p.CurrentValue
		}
	}

	if totalValue > 0 {
		for _, p := range positions {
			weight := p.CurrentValue / totalValue
			insights.WeightedReturn += p.ReturnPct * weight
			insights.WeightedVolatility += p.Volatility * weight
		}
		insights.HighRiskExposure = highRiskValue / totalValue * 100
	}
	insights.AverageSharpe = sharpeSum / float64(len(positions))

	insights.PortfolioGrade = portfolioGrade(gradeSum / float64(len(positions)))
	insights.HighRiskLevel = highRiskLevel(insights.HighRiskExposure)
	insights.Strategy = portfolioStrategy(insights)

	return insights
}

// portfolioGrade maps the average grade points back to a letter.
func portfolioGrade(avgPoints float64) string {
	switch {
	case avgPoints >= 4.0:
		return "A"
	case avgPoints >= 3.3:
		return "B+"
	case avgPoints >= 2.7:
		return "B"
	case avgPoints >= 2.0:
		return "C"
	case avgPoints >= 1.0:
		return "D"
	default:
		return "F"
	}
}

func highRiskLevel(exposurePct float64) string {
	switch {
	case exposurePct > 40:
		return "HIGH"
	case exposurePct > 20:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// portfolioStrategy labels the overall posture suggested by the
// aggregate numbers.
func portfolioStrategy(in PortfolioInsights) string {
	sells := in.ActionCounts[ActionConsiderSell] + in.ActionCounts[ActionReduce]
	buys := in.ActionCounts[ActionStrongBuy] + in.ActionCounts[ActionBuyMore]

	switch {
	case in.HighRiskLevel == "HIGH":
		return "DERISK: trim high-risk positions before adding exposure"
	case sells > buys && sells > 0:
		return "CONSOLIDATE: more positions flagged for reduction than accumulation"
	case in.WeightedReturn > 15 && in.AverageSharpe > 1.0:
		return "COMPOUND: portfolio quality is high, let winners run"
	case buys > 0:
		return "ACCUMULATE: selectively add to flagged positions"
	default:
		return "MAINTAIN: hold current allocations and monitor"
	}
}
