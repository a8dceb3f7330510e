package scoring

// PositionRecommendation suggests how large a position should be
// relative to the whole portfolio.
type PositionRecommendation struct {
	Size      string `json:"recommended_size"`
	Range     string `json:"portfolio_percentage"`
	Rationale string `json:"rationale"`
}

// RecommendPosition sizes a position from its risk score, realized
// performance and volatility. Quality earns room; everything else is
// kept small.
func RecommendPosition(riskScore int, returnPercent, volatility float64) PositionRecommendation {
	switch {
	case riskScore >= 70 && returnPercent > 15:
		return PositionRecommendation{
			Size:      "LARGE",
			Range:     "15-20%",
			Rationale: "High quality position with strong risk-adjusted returns",
		}
	case riskScore >= 60 && returnPercent > 10:
		return PositionRecommendation{
			Size:      "MEDIUM_LARGE",
			Range:     "10-15%",
			Rationale: "Good quality position with solid returns",
		}
	case riskScore >= 50 && returnPercent > 0:
		return PositionRecommendation{
			Size:      "MEDIUM",
			Range:     "5-10%",
			Rationale: "Balanced position with acceptable risk profile",
		}
	case riskScore >= 40:
		return PositionRecommendation{
			Size:      "SMALL",
			Range:     "2-5%",
			Rationale: "Elevated risk warrants a limited allocation",
		}
	default:
		if volatility > 60 {
			return PositionRecommendation{
				Size:      "MINIMAL",
				Range:     "1-3%",
				Rationale: "Extreme volatility and weak risk profile",
			}
		}
		return PositionRecommendation{
			Size:      "MINIMAL",
			Range:     "1-3%",
			Rationale: "Weak risk profile warrants minimal exposure",
		}
	}
}
