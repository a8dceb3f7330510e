package scoring

// RiskInputs are the already-computed metrics the risk scorer consumes.
// Sortino, Beta and Momentum6M are optional refinements; zero values
// (Beta defaulting to 1) keep the score usable without them.
type RiskInputs struct {
	Volatility   float64
	SharpeRatio  float64
	MaxDrawdown  float64
	AnnualReturn float64
	SortinoRatio float64
	Beta         float64
	Momentum6M   float64
}

// RiskScore is a bounded 0-100 assessment; higher is better.
type RiskScore struct {
	Score       int                `json:"risk_score"`
	Category    string             `json:"risk_category"`
	Description string             `json:"risk_description"`
	Components  map[string]float64 `json:"component_scores"`
}

// ComputeRiskScore maps each metric through its threshold band table to
// a signed point contribution and sums onto a neutral base of 50,
// clamping to [0, 100]. Pure function of the inputs.
func ComputeRiskScore(in RiskInputs) RiskScore {
	beta := in.Beta
	if beta == 0 {
		beta = 1
	}

	components := map[string]float64{
		"volatility":    pointsBelow(in.Volatility, riskVolatilityBands, riskVolatilityFallback),
		"sharpe_ratio":  pointsAbove(in.SharpeRatio, riskSharpeBands, riskSharpeFallback),
		"max_drawdown":  pointsAbove(in.MaxDrawdown, riskDrawdownBands, riskDrawdownFallback),
		"sortino_ratio": pointsAbove(in.SortinoRatio, riskSortinoBands, riskSortinoFallback),
		"beta":          scoreBeta(beta),
		"momentum_6m":   pointsAbove(in.Momentum6M, riskMomentumBands, riskMomentumFallback),
		"annual_return": pointsAbove(in.AnnualReturn, riskReturnBands, riskReturnFallback),
	}

	total := riskScoreBase
	for _, points := range components {
		total += points
	}
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	score := int(total)
	category, description := riskCategory(score)

	return RiskScore{
		Score:       score,
		Category:    category,
		Description: description,
		Components:  components,
	}
}

// scoreBeta rewards market-like betas and penalizes aggressive ones.
// Band tables don't fit the two-sided range check, so it stays code.
func scoreBeta(beta float64) float64 {
	switch {
	case beta >= 0.8 && beta <= 1.2:
		return 8
	case beta >= 0.6 && beta <= 1.4:
		return 5
	case beta < 0.6:
		return 3 // low correlation, defensive
	default:
		return -5
	}
}

func riskCategory(score int) (string, string) {
	switch {
	case score >= 80:
		return "VERY_LOW", "Excellent risk-reward profile"
	case score >= 65:
		return "LOW", "Good risk-reward profile"
	case score >= 50:
		return "MODERATE", "Balanced risk-reward profile"
	case score >= 35:
		return "HIGH", "Higher risk investment"
	default:
		return "VERY_HIGH", "High risk investment"
	}
}
