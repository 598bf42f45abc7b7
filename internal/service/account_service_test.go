package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/predictor-api/internal/domain/entity"
	apperrors "github.com/yourusername/predictor-api/internal/pkg/errors"
)

func newTestAccountService(userRepo *MockUserRepository, leagueRepo *MockLeagueRepository, predictionRepo *MockPredictionRepository, statsRepo *MockStatsRepository, notificationRepo *MockNotificationRepository) *AccountService {
	return NewAccountService(userRepo, leagueRepo, predictionRepo, statsRepo, notificationRepo, nil)
}

func TestPreviewDeletion_CountsEverythingRemoved(t *testing.T) {
	userRepo := new(MockUserRepository)
	leagueRepo := new(MockLeagueRepository)
	predictionRepo := new(MockPredictionRepository)
	statsRepo := new(MockStatsRepository)
	notificationRepo := new(MockNotificationRepository)

	userRepo.On("GetByID", uint(7)).Return(hashedUser(7, "alice@example.com", "strongpassword"), nil)
	predictionRepo.On("CountByUser", uint(7)).Return(int64(38), nil)
	statsRepo.On("CountByUser", uint(7)).Return(int64(2), nil)
	leagueRepo.On("CountMembershipsByUser", uint(7)).Return(int64(3), nil)
	notificationRepo.On("CountByUser", uint(7)).Return(int64(12), nil)
	leagueRepo.On("ListCreatedBy", uint(7)).Return([]entity.MiniLeague{
		{ID: 4, Name: "Office League"},
		{ID: 5, Name: "Solo League"},
	}, nil)
	leagueRepo.On("OldestOtherMember", uint(4), uint(7)).Return(&entity.MiniLeagueMember{MiniLeagueID: 4, UserID: 9}, nil)
	leagueRepo.On("OldestOtherMember", uint(5), uint(7)).Return(nil, apperrors.ErrNotFound)

	svc := newTestAccountService(userRepo, leagueRepo, predictionRepo, statsRepo, notificationRepo)
	preview, err := svc.PreviewDeletion(7)

	require.NoError(t, err)
	assert.Equal(t, int64(38), preview.PredictionCount)
	assert.Equal(t, int64(2), preview.StatsCount)
	assert.Equal(t, int64(3), preview.MembershipCount)
	assert.Equal(t, int64(12), preview.NotificationCount)
	require.Len(t, preview.OwnedLeagues, 2)
	assert.False(t, preview.OwnedLeagues[0].WillBeDeleted)
	require.NotNil(t, preview.OwnedLeagues[0].TransferToUser)
	assert.Equal(t, uint(9), *preview.OwnedLeagues[0].TransferToUser)
	assert.True(t, preview.OwnedLeagues[1].WillBeDeleted)
	assert.Nil(t, preview.OwnedLeagues[1].TransferToUser)
}

func TestDeleteAccount_RejectsWrongConfirmationPhrase(t *testing.T) {
	userRepo := new(MockUserRepository)

	svc := newTestAccountService(userRepo, new(MockLeagueRepository), new(MockPredictionRepository), new(MockStatsRepository), new(MockNotificationRepository))
	err := svc.DeleteAccount(7, "delete", "password")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	userRepo.AssertNotCalled(t, "GetByID", uint(7))
}

func TestDeleteAccount_RejectsWrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", uint(7)).Return(hashedUser(7, "alice@example.com", "strongpassword"), nil)

	svc := newTestAccountService(userRepo, new(MockLeagueRepository), new(MockPredictionRepository), new(MockStatsRepository), new(MockNotificationRepository))
	err := svc.DeleteAccount(7, "DELETE", "wrongpassword")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestDeleteAccount_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	svc := newTestAccountService(userRepo, new(MockLeagueRepository), new(MockPredictionRepository), new(MockStatsRepository), new(MockNotificationRepository))
	err := svc.DeleteAccount(99, "DELETE", "password")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
