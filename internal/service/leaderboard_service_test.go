package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/predictor-api/internal/domain/entity"
	"github.com/yourusername/predictor-api/internal/domain/repository"
	apperrors "github.com/yourusername/predictor-api/internal/pkg/errors"
)

func TestGlobalLeaderboard_CacheMissComputesAndStores(t *testing.T) {
	statsRepo := new(MockStatsRepository)
	cacheRepo := new(MockCacheRepository)

	cacheRepo.On("GetJSON", "leaderboard:season:1", mock.Anything).Return(apperrors.ErrNotFound)
	statsRepo.On("StandingsBySeason", uint(1)).Return([]repository.Standing{
		{UserID: 1, Username: "alice", TotalPoints: 7, PredictionsMade: 4},
		{UserID: 2, Username: "bob", TotalPoints: 3, PredictionsMade: 4},
	}, nil)
	cacheRepo.On("SetJSON", "leaderboard:season:1", mock.Anything, leaderboardCacheTTL).Return(nil)

	svc := NewLeaderboardService(statsRepo, new(MockFixtureRepository), new(MockSeasonRepository), cacheRepo, 5)
	ranked, err := svc.GlobalLeaderboard(1)

	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "alice", ranked[0].Username)
	assert.Equal(t, 1, ranked[0].Position)
	cacheRepo.AssertExpectations(t)
}

func TestGlobalLeaderboard_CacheHitSkipsQuery(t *testing.T) {
	statsRepo := new(MockStatsRepository)
	cacheRepo := new(MockCacheRepository)

	cacheRepo.On("GetJSON", "leaderboard:season:1", mock.Anything).Return(nil).
		Run(func(args mock.Arguments) {
			dest := args.Get(1).(*[]RankedStanding)
			*dest = []RankedStanding{{Position: 1, Standing: repository.Standing{UserID: 1, Username: "alice"}}}
		})

	svc := NewLeaderboardService(statsRepo, new(MockFixtureRepository), new(MockSeasonRepository), cacheRepo, 5)
	ranked, err := svc.GlobalLeaderboard(1)

	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "alice", ranked[0].Username)
	statsRepo.AssertNotCalled(t, "StandingsBySeason", mock.Anything)
}

func TestFormLeaderboard_UsesRecentFinishedWindow(t *testing.T) {
	statsRepo := new(MockStatsRepository)
	fixtureRepo := new(MockFixtureRepository)

	fixtureRepo.On("RecentFinished", uint(1), 5).Return([]entity.Fixture{{ID: 11}, {ID: 12}}, nil)
	statsRepo.On("WindowedStandings", []uint{11, 12}).Return([]repository.Standing{
		{UserID: 1, Username: "alice", TotalPoints: 4, PredictionsMade: 2},
	}, nil)

	svc := NewLeaderboardService(statsRepo, fixtureRepo, new(MockSeasonRepository), new(MockCacheRepository), 5)
	ranked, err := svc.FormLeaderboard(1)

	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, 1, ranked[0].Position)
}

func TestMonthLeaderboard_RejectsInvalidMonth(t *testing.T) {
	svc := NewLeaderboardService(new(MockStatsRepository), new(MockFixtureRepository), new(MockSeasonRepository), new(MockCacheRepository), 5)

	_, err := svc.MonthLeaderboard(1, 2026, time.Month(13))

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestExportXLSX_WritesWorkbook(t *testing.T) {
	svc := NewLeaderboardService(new(MockStatsRepository), new(MockFixtureRepository), new(MockSeasonRepository), new(MockCacheRepository), 5)

	ranked := []RankedStanding{
		{Position: 1, Standing: repository.Standing{UserID: 1, Username: "alice", TotalPoints: 9}},
		{Position: 2, Standing: repository.Standing{UserID: 2, Username: "bob", TotalPoints: 4}},
	}

	buf, err := svc.ExportXLSX("Season 2026/27", ranked)

	require.NoError(t, err)
	assert.Greater(t, buf.Len(), 0)
}
