package scoring

// GradeBreakdown itemizes the weighted point buckets behind a grade.
type GradeBreakdown struct {
	TotalScore      float64 `json:"total_score"`
	ReturnPoints    float64 `json:"return_points"`
	SharpePoints    float64 `json:"sharpe_points"`
	VolatilityPoints float64 `json:"volatility_points"`
	DrawdownPoints  float64 `json:"drawdown_points"`
	SortinoPoints   float64 `json:"sortino_points"`
}

// Grade is the letter-grade assessment of a position.
type Grade struct {
	Grade          string         `json:"grade"` // F .. A+
	GradePoints    float64        `json:"grade_points"`
	Description    string         `json:"description"`
	InvestmentTier string         `json:"investment_tier"`
	Recommendation string         `json:"recommendation"`
	Breakdown      GradeBreakdown `json:"score_breakdown"`
}

// gradeCutoff maps a minimum total score to a letter grade.
type gradeCutoff struct {
	minScore       float64
	grade          string
	gradePoints    float64
	description    string
	tier           string
	recommendation string
}

var gradeCutoffs = []gradeCutoff{
	{90, "A+", 4.3, "Outstanding: Exceptional returns with minimal risk", "TIER_1_PREMIUM", "Core holding - maximize position"},
	{85, "A", 4.0, "Excellent: Strong returns with low risk", "TIER_1", "Core holding - large position"},
	{80, "A-", 3.7, "Very Good: Solid returns with manageable risk", "TIER_2", "Strong buy - significant position"},
	{75, "B+", 3.3, "Good: Positive returns with moderate risk", "TIER_2", "Buy - moderate position"},
	{65, "B", 3.0, "Fair: Decent returns with acceptable risk", "TIER_3", "Hold - maintain position"},
	{55, "B-", 2.7, "Below Average: Mixed performance", "TIER_3", "Monitor closely"},
	{45, "C+", 2.3, "Weak: Underperforming with elevated risk", "TIER_4", "Consider reducing position"},
	{35, "C", 2.0, "Poor: Negative returns with high risk", "TIER_4", "Reduce position significantly"},
	{25, "D", 1.0, "Very Poor: Large losses with very high risk", "TIER_5", "Consider selling"},
}

var failingGrade = gradeCutoff{0, "F", 0.0, "Failing: Severe losses with extreme risk", "TIER_5", "Sell immediately"}

// ComputeGrade scores a position through the weighted point buckets
// (return 35%, Sharpe 25%, volatility 20%, drawdown 10%, Sortino 10%)
// and maps the total through discrete cutoffs to a letter grade.
func ComputeGrade(in RiskInputs) Grade {
	breakdown := GradeBreakdown{
		ReturnPoints:     pointsAbove(in.AnnualReturn, gradeReturnBands, gradeReturnFallback),
		SharpePoints:     pointsAbove(in.SharpeRatio, gradeSharpeBands, gradeSharpeFallback),
		VolatilityPoints: pointsBelow(in.Volatility, gradeVolatilityBands, gradeVolatilityFallback),
		DrawdownPoints:   pointsAbove(in.MaxDrawdown, gradeDrawdownBands, gradeDrawdownFallback),
		SortinoPoints:    pointsAbove(in.SortinoRatio, gradeSortinoBands, gradeSortinoFallback),
	}
	breakdown.TotalScore = breakdown.ReturnPoints + breakdown.SharpePoints +
		breakdown.VolatilityPoints + breakdown.DrawdownPoints + breakdown.SortinoPoints

	cutoff := failingGrade
	for _, c := range gradeCutoffs {
		if breakdown.TotalScore >= c.minScore {
			cutoff = c
			break
		}
	}

	return Grade{
		Grade:          cutoff.grade,
		GradePoints:    cutoff.gradePoints,
		Description:    cutoff.description,
		InvestmentTier: cutoff.tier,
		Recommendation: cutoff.recommendation,
		Breakdown:      breakdown,
	}
}
