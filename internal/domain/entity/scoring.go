package entity

// Points awarded per prediction.
const (
	PointsExactScore    = 3
	PointsCorrectResult = 1
	PointsWrong         = 0
)

// MatchOutcome classifies a scoreline.
type MatchOutcome string

const (
	OutcomeHomeWin MatchOutcome = "home"
	OutcomeAwayWin MatchOutcome = "away"
	OutcomeDraw    MatchOutcome = "draw"
)

// Outcome returns the result class of a scoreline.
func Outcome(home, away int) MatchOutcome {
	switch {
	case home > away:
		return OutcomeHomeWin
	case away > home:
		return OutcomeAwayWin
	default:
		return OutcomeDraw
	}
}

// ScorePrediction awards points for a prediction against the final score:
// 3 for the exact scoreline, 1 for the correct outcome, 0 otherwise.
// Total over non-negative integers; inputs are validated upstream.
func ScorePrediction(predHome, predAway, actualHome, actualAway int) int {
	if predHome == actualHome && predAway == actualAway {
		return PointsExactScore
	}
	if Outcome(predHome, predAway) == Outcome(actualHome, actualAway) {
		return PointsCorrectResult
	}
	return PointsWrong
}
