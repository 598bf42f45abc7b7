package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/predictor-api/internal/domain/entity"
	apperrors "github.com/yourusername/predictor-api/internal/pkg/errors"
)

func verifiedUser(id uint) *entity.User {
	return &entity.User{ID: id, Username: "tester", EmailVerified: true}
}

func openFixture(id, seasonID uint) *entity.Fixture {
	return &entity.Fixture{
		ID:          id,
		SeasonID:    seasonID,
		HomeTeam:    "Wrexham",
		AwayTeam:    "Stockport",
		Status:      entity.FixtureStatusScheduled,
		KickoffTime: time.Now().Add(2 * time.Hour),
	}
}

func TestSubmitPrediction_CreatesNew(t *testing.T) {
	userRepo := new(MockUserRepository)
	fixtureRepo := new(MockFixtureRepository)
	predictionRepo := new(MockPredictionRepository)

	fixture := openFixture(10, 1)
	userRepo.On("GetByID", uint(7)).Return(verifiedUser(7), nil)
	fixtureRepo.On("GetByID", uint(10)).Return(fixture, nil)
	fixtureRepo.On("NextScheduled", uint(1), mock.Anything).Return(fixture, nil)
	predictionRepo.On("GetByUserAndFixture", uint(7), uint(10)).Return(nil, apperrors.ErrNotFound)
	predictionRepo.On("Create", mock.AnythingOfType("*entity.Prediction")).Return(nil)

	svc := NewPredictionService(predictionRepo, fixtureRepo, userRepo, 5, true)
	prediction, err := svc.SubmitPrediction(7, 10, 2, 1)

	require.NoError(t, err)
	assert.Equal(t, 2, prediction.HomePrediction)
	assert.Equal(t, 1, prediction.AwayPrediction)
	assert.Nil(t, prediction.PointsEarned)
	predictionRepo.AssertExpectations(t)
}

func TestSubmitPrediction_UpdatesExisting(t *testing.T) {
	userRepo := new(MockUserRepository)
	fixtureRepo := new(MockFixtureRepository)
	predictionRepo := new(MockPredictionRepository)

	fixture := openFixture(10, 1)
	existing := &entity.Prediction{ID: 3, UserID: 7, FixtureID: 10, HomePrediction: 0, AwayPrediction: 0}

	userRepo.On("GetByID", uint(7)).Return(verifiedUser(7), nil)
	fixtureRepo.On("GetByID", uint(10)).Return(fixture, nil)
	fixtureRepo.On("NextScheduled", uint(1), mock.Anything).Return(fixture, nil)
	predictionRepo.On("GetByUserAndFixture", uint(7), uint(10)).Return(existing, nil)
	predictionRepo.On("Update", existing).Return(nil)

	svc := NewPredictionService(predictionRepo, fixtureRepo, userRepo, 5, true)
	prediction, err := svc.SubmitPrediction(7, 10, 3, 2)

	require.NoError(t, err)
	assert.Equal(t, uint(3), prediction.ID)
	assert.Equal(t, 3, prediction.HomePrediction)
	assert.Equal(t, 2, prediction.AwayPrediction)
}

func TestSubmitPrediction_RejectsUnverifiedEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	fixtureRepo := new(MockFixtureRepository)
	predictionRepo := new(MockPredictionRepository)

	userRepo.On("GetByID", uint(7)).Return(&entity.User{ID: 7, EmailVerified: false}, nil)

	svc := NewPredictionService(predictionRepo, fixtureRepo, userRepo, 5, true)
	_, err := svc.SubmitPrediction(7, 10, 1, 1)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	fixtureRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestSubmitPrediction_RejectsAfterDeadline(t *testing.T) {
	userRepo := new(MockUserRepository)
	fixtureRepo := new(MockFixtureRepository)
	predictionRepo := new(MockPredictionRepository)

	fixture := openFixture(10, 1)
	fixture.KickoffTime = time.Now().Add(3 * time.Minute) // inside the 5-minute cutoff

	userRepo.On("GetByID", uint(7)).Return(verifiedUser(7), nil)
	fixtureRepo.On("GetByID", uint(10)).Return(fixture, nil)

	svc := NewPredictionService(predictionRepo, fixtureRepo, userRepo, 5, true)
	_, err := svc.SubmitPrediction(7, 10, 1, 1)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	predictionRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubmitPrediction_RejectsFinishedFixture(t *testing.T) {
	userRepo := new(MockUserRepository)
	fixtureRepo := new(MockFixtureRepository)
	predictionRepo := new(MockPredictionRepository)

	fixture := openFixture(10, 1)
	fixture.Status = entity.FixtureStatusFinished

	userRepo.On("GetByID", uint(7)).Return(verifiedUser(7), nil)
	fixtureRepo.On("GetByID", uint(10)).Return(fixture, nil)

	svc := NewPredictionService(predictionRepo, fixtureRepo, userRepo, 5, true)
	_, err := svc.SubmitPrediction(7, 10, 1, 1)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSubmitPrediction_RejectsNonNextFixture(t *testing.T) {
	userRepo := new(MockUserRepository)
	fixtureRepo := new(MockFixtureRepository)
	predictionRepo := new(MockPredictionRepository)

	target := openFixture(10, 1)
	next := openFixture(9, 1)
	next.KickoffTime = time.Now().Add(time.Hour)

	userRepo.On("GetByID", uint(7)).Return(verifiedUser(7), nil)
	fixtureRepo.On("GetByID", uint(10)).Return(target, nil)
	fixtureRepo.On("NextScheduled", uint(1), mock.Anything).Return(next, nil)

	svc := NewPredictionService(predictionRepo, fixtureRepo, userRepo, 5, true)
	_, err := svc.SubmitPrediction(7, 10, 1, 1)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestSubmitPrediction_AnyOpenFixtureWhenPolicyDisabled(t *testing.T) {
	userRepo := new(MockUserRepository)
	fixtureRepo := new(MockFixtureRepository)
	predictionRepo := new(MockPredictionRepository)

	fixture := openFixture(10, 1)
	userRepo.On("GetByID", uint(7)).Return(verifiedUser(7), nil)
	fixtureRepo.On("GetByID", uint(10)).Return(fixture, nil)
	predictionRepo.On("GetByUserAndFixture", uint(7), uint(10)).Return(nil, apperrors.ErrNotFound)
	predictionRepo.On("Create", mock.AnythingOfType("*entity.Prediction")).Return(nil)

	svc := NewPredictionService(predictionRepo, fixtureRepo, userRepo, 5, false)
	_, err := svc.SubmitPrediction(7, 10, 1, 1)

	require.NoError(t, err)
	fixtureRepo.AssertNotCalled(t, "NextScheduled", mock.Anything, mock.Anything)
}

func TestSubmitPrediction_RejectsNegativeScores(t *testing.T) {
	svc := NewPredictionService(new(MockPredictionRepository), new(MockFixtureRepository), new(MockUserRepository), 5, true)

	_, err := svc.SubmitPrediction(7, 10, -1, 0)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListFixturePredictions_HiddenWhileOpen(t *testing.T) {
	fixtureRepo := new(MockFixtureRepository)
	predictionRepo := new(MockPredictionRepository)

	fixtureRepo.On("GetByID", uint(10)).Return(openFixture(10, 1), nil)

	svc := NewPredictionService(predictionRepo, fixtureRepo, new(MockUserRepository), 5, true)
	_, err := svc.ListFixturePredictions(10)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	predictionRepo.AssertNotCalled(t, "ListByFixture", mock.Anything)
}

func TestListFixturePredictions_VisibleAfterDeadline(t *testing.T) {
	fixtureRepo := new(MockFixtureRepository)
	predictionRepo := new(MockPredictionRepository)

	fixture := openFixture(10, 1)
	fixture.Status = entity.FixtureStatusFinished
	fixtureRepo.On("GetByID", uint(10)).Return(fixture, nil)
	predictionRepo.On("ListByFixture", uint(10)).Return([]entity.Prediction{{ID: 1}, {ID: 2}}, nil)

	svc := NewPredictionService(predictionRepo, fixtureRepo, new(MockUserRepository), 5, true)
	predictions, err := svc.ListFixturePredictions(10)

	require.NoError(t, err)
	assert.Len(t, predictions, 2)
}
