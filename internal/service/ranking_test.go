package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/predictor-api/internal/domain/repository"
)

func standing(userID uint, username string, points, scores, results, made int) repository.Standing {
	return repository.Standing{
		UserID:          userID,
		Username:        username,
		TotalPoints:     points,
		CorrectScores:   scores,
		CorrectResults:  results,
		PredictionsMade: made,
	}
}

func TestRankStandings_OrderAndTiebreakers(t *testing.T) {
	input := []repository.Standing{
		standing(1, "alice", 10, 2, 4, 8),
		standing(2, "bob", 12, 3, 3, 8),
		standing(3, "carol", 10, 3, 1, 8),
		standing(4, "dave", 10, 2, 4, 8),
	}

	ranked := RankStandings(input)

	assert.Len(t, ranked, 4)
	assert.Equal(t, "bob", ranked[0].Username)
	assert.Equal(t, 1, ranked[0].Position)

	// carol beats alice and dave on exact scores despite equal points
	assert.Equal(t, "carol", ranked[1].Username)
	assert.Equal(t, 2, ranked[1].Position)

	// alice and dave tie on everything, ordered by username, sharing rank
	assert.Equal(t, "alice", ranked[2].Username)
	assert.Equal(t, 3, ranked[2].Position)
	assert.Equal(t, "dave", ranked[3].Username)
	assert.Equal(t, 3, ranked[3].Position)
}

func TestRankStandings_CompetitionRankingSkipsTiedBlock(t *testing.T) {
	input := []repository.Standing{
		standing(1, "a", 9, 1, 2, 5),
		standing(2, "b", 9, 1, 2, 5),
		standing(3, "c", 7, 1, 1, 5),
	}

	ranked := RankStandings(input)

	assert.Equal(t, 1, ranked[0].Position)
	assert.Equal(t, 1, ranked[1].Position)
	assert.Equal(t, 3, ranked[2].Position)
}

func TestRankStandings_ZeroActivityUsersShareLastSlot(t *testing.T) {
	input := []repository.Standing{
		standing(1, "idle1", 0, 0, 0, 0),
		standing(2, "active1", 5, 1, 2, 3),
		standing(3, "idle2", 0, 0, 0, 0),
		standing(4, "active2", 0, 0, 0, 3),
	}

	ranked := RankStandings(input)

	// active users first, even the one on zero points
	assert.Equal(t, "active1", ranked[0].Username)
	assert.Equal(t, 1, ranked[0].Position)
	assert.Equal(t, "active2", ranked[1].Username)
	assert.Equal(t, 2, ranked[1].Position)

	// both idle users share the position after the last predictor
	assert.Equal(t, "idle1", ranked[2].Username)
	assert.Equal(t, 3, ranked[2].Position)
	assert.Equal(t, "idle2", ranked[3].Username)
	assert.Equal(t, 3, ranked[3].Position)
}

func TestRankStandings_EmptyInput(t *testing.T) {
	ranked := RankStandings(nil)
	assert.Empty(t, ranked)
}

func TestRankStandings_DoesNotMutateInput(t *testing.T) {
	input := []repository.Standing{
		standing(1, "z", 1, 0, 1, 1),
		standing(2, "a", 9, 3, 0, 4),
	}

	RankStandings(input)

	assert.Equal(t, "z", input[0].Username)
	assert.Equal(t, "a", input[1].Username)
}

func TestPositionsByUser(t *testing.T) {
	ranked := RankStandings([]repository.Standing{
		standing(1, "a", 9, 1, 2, 5),
		standing(2, "b", 3, 0, 3, 5),
	})

	positions := PositionsByUser(ranked)

	assert.Equal(t, 1, positions[1])
	assert.Equal(t, 2, positions[2])
}
