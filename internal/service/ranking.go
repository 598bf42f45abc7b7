package service

import (
	"sort"

	"github.com/yourusername/predictor-api/internal/domain/repository"
)

// RankedStanding is a leaderboard row with its assigned position.
type RankedStanding struct {
	Position int `json:"position"`
	repository.Standing
}

// rankLess is the leaderboard sort key. Users with at least one scored
// prediction come before users without any, then points, exact scores,
// correct results, and username as the final stable tiebreaker.
func rankLess(a, b repository.Standing) bool {
	aActive := a.PredictionsMade > 0
	bActive := b.PredictionsMade > 0
	if aActive != bActive {
		return aActive
	}
	if a.TotalPoints != b.TotalPoints {
		return a.TotalPoints > b.TotalPoints
	}
	if a.CorrectScores != b.CorrectScores {
		return a.CorrectScores > b.CorrectScores
	}
	if a.CorrectResults != b.CorrectResults {
		return a.CorrectResults > b.CorrectResults
	}
	return a.Username < b.Username
}

// sameRank reports whether two standings tie on every ranking criterion
// except the username tiebreaker.
func sameRank(a, b repository.Standing) bool {
	return (a.PredictionsMade > 0) == (b.PredictionsMade > 0) &&
		a.TotalPoints == b.TotalPoints &&
		a.CorrectScores == b.CorrectScores &&
		a.CorrectResults == b.CorrectResults
}

// RankStandings sorts standings and assigns competition-style positions:
// tied users share a position and the next distinct rank skips past them
// (1, 1, 3, 4). Users with zero scored predictions all share the position
// directly after the last ranked predictor.
func RankStandings(standings []repository.Standing) []RankedStanding {
	sorted := make([]repository.Standing, len(standings))
	copy(sorted, standings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rankLess(sorted[i], sorted[j])
	})

	ranked := make([]RankedStanding, 0, len(sorted))

	activeCount := 0
	for _, s := range sorted {
		if s.PredictionsMade > 0 {
			activeCount++
		}
	}

	position := 0
	for i, s := range sorted {
		switch {
		case s.PredictionsMade == 0:
			// All inactive users share the slot after every predictor.
			position = activeCount + 1
		case i == 0 || !sameRank(sorted[i-1], s):
			position = i + 1
		}
		ranked = append(ranked, RankedStanding{Position: position, Standing: s})
	}

	return ranked
}

// PositionsByUser flattens ranked standings into a user -> position map.
func PositionsByUser(ranked []RankedStanding) map[uint]int {
	positions := make(map[uint]int, len(ranked))
	for _, r := range ranked {
		positions[r.UserID] = r.Position
	}
	return positions
}
