package scoring

import "fmt"

// Action is a trading recommendation for a held position.
type Action string

const (
	ActionStrongBuy      Action = "STRONG_BUY"
	ActionBuyMore        Action = "BUY_MORE"
	ActionHold           Action = "HOLD"
	ActionMonitor        Action = "MONITOR"
	ActionMonitorClosely Action = "MONITOR_CLOSELY"
	ActionReduce         Action = "REDUCE_POSITION"
	ActionConsiderSell   Action = "CONSIDER_SELL"
)

// actionRank orders actions from most bullish to most bearish so rules
// can nudge the action up or down the scale.
var actionRank = []Action{
	ActionStrongBuy,
	ActionBuyMore,
	ActionHold,
	ActionMonitor,
	ActionReduce,
	ActionConsiderSell,
}

// SignalInputs collects everything the signal engine looks at.
type SignalInputs struct {
	ReturnPercent float64
	SharpeRatio   float64
	Volatility    float64
	MaxDrawdown   float64
	DaysHeld      int
	RiskScore     int
	GradePoints   float64
	Momentum6M    float64
}

// Signal is the final recommendation with its audit trail. FiredRules
// records, in evaluation order, every rule that adjusted the action or
// the confidence, so a recommendation can always be explained.
type Signal struct {
	Action     Action   `json:"action"`
	Confidence float64  `json:"confidence"`
	Level      string   `json:"confidence_level"`
	Strength   string   `json:"signal_strength"`
	FiredRules []string `json:"fired_rules"`
}

// signalRule adjusts the working action and confidence when its
// condition holds. shift moves the action along actionRank (negative is
// more bullish, positive more bearish).
type signalRule struct {
	name       string
	applies    func(SignalInputs) bool
	shift      int
	confidence float64
}

// The rule groups run in a fixed order: risk-adjusted quality first,
// then stability, then conviction refinements. Order matters because
// each rule sees the action left by the previous one.
var signalRules = []signalRule{
	// Sharpe ratio: risk-adjusted quality.
	{"sharpe_excellent", func(in SignalInputs) bool { return in.SharpeRatio > 1.5 }, -1, 15},
	{"sharpe_good", func(in SignalInputs) bool { return in.SharpeRatio > 1.0 && in.SharpeRatio <= 1.5 }, 0, 10},
	{"sharpe_negative", func(in SignalInputs) bool { return in.SharpeRatio < 0 }, 1, -10},

	// Volatility: stability of the ride.
	{"volatility_low", func(in SignalInputs) bool { return in.Volatility < 20 }, 0, 10},
	{"volatility_extreme", func(in SignalInputs) bool { return in.Volatility > 60 }, 1, -15},

	// Drawdown: downside already realized.
	{"drawdown_severe", func(in SignalInputs) bool { return in.MaxDrawdown < -40 }, 1, -10},
	{"drawdown_shallow", func(in SignalInputs) bool { return in.MaxDrawdown > -10 && in.DaysHeld > 30 }, 0, 5},

	// Holding period: young positions get less conviction.
	{"position_too_young", func(in SignalInputs) bool { return in.DaysHeld < 30 }, 0, -15},
	{"position_seasoned", func(in SignalInputs) bool { return in.DaysHeld > 180 }, 0, 5},

	// Composite scores.
	{"risk_score_strong", func(in SignalInputs) bool { return in.RiskScore >= 70 }, 0, 10},
	{"risk_score_weak", func(in SignalInputs) bool { return in.RiskScore < 40 }, 1, -10},
	{"grade_top_tier", func(in SignalInputs) bool { return in.GradePoints >= 3.7 }, -1, 10},
	{"grade_failing", func(in SignalInputs) bool { return in.GradePoints < 1.0 }, 1, -10},

	// Momentum: trend confirmation.
	{"momentum_positive", func(in SignalInputs) bool { return in.Momentum6M > 10 }, 0, 5},
	{"momentum_negative", func(in SignalInputs) bool { return in.Momentum6M < -10 }, 1, -5},
}

// baseAction maps the raw return percentage to a starting action and
// confidence before any refinement rules run.
func baseAction(returnPercent float64) (Action, float64) {
	switch {
	case returnPercent > 30:
		return ActionStrongBuy, 25
	case returnPercent > 15:
		return ActionBuyMore, 20
	case returnPercent > 5:
		return ActionHold, 10
	case returnPercent > -10:
		return ActionMonitor, 5
	case returnPercent > -25:
		return ActionReduce, -10
	default:
		return ActionConsiderSell, -20
	}
}

// ComputeSignal derives the investment signal for a position. The base
// action comes from raw performance; each rule then refines it and
// leaves its name in the audit trail.
func ComputeSignal(in SignalInputs) Signal {
	action, confidence := baseAction(in.ReturnPercent)
	fired := []string{fmt.Sprintf("base_%s", action)}

	for _, rule := range signalRules {
		if !rule.applies(in) {
			continue
		}
		action = shiftAction(action, rule.shift)
		confidence += rule.confidence
		fired = append(fired, rule.name)
	}

	// MONITOR with eroded confidence deserves a sharper label.
	if action == ActionMonitor && confidence < 0 {
		action = ActionMonitorClosely
		fired = append(fired, "monitor_escalated")
	}

	return Signal{
		Action:     action,
		Confidence: confidence,
		Level:      confidenceLevel(confidence),
		Strength:   signalStrength(action, confidence),
		FiredRules: fired,
	}
}

func shiftAction(action Action, shift int) Action {
	if shift == 0 {
		return action
	}
	idx := 0
	for i, a := range actionRank {
		if a == action {
			idx = i
			break
		}
	}
	idx += shift
	if idx < 0 {
		idx = 0
	}
	if idx >= len(actionRank) {
		idx = len(actionRank) - 1
	}
	return actionRank[idx]
}

func confidenceLevel(confidence float64) string {
	switch {
	case confidence >= 60:
		return "VERY_HIGH"
	case confidence >= 40:
		return "HIGH"
	case confidence >= 20:
		return "MEDIUM"
	case confidence >= 0:
		return "LOW"
	default:
		return "VERY_LOW"
	}
}

func signalStrength(action Action, confidence float64) string {
	switch action {
	case ActionStrongBuy, ActionConsiderSell:
		if confidence >= 40 {
			return "STRONG"
		}
		return "MODERATE"
	case ActionBuyMore, ActionReduce:
		if confidence >= 30 {
			return "MODERATE"
		}
		return "WEAK"
	default:
		return "NEUTRAL"
	}
}
