package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/predictor-api/internal/domain/entity"
	"github.com/yourusername/predictor-api/internal/domain/repository"
	apperrors "github.com/yourusername/predictor-api/internal/pkg/errors"
)

// PredictionService handles prediction submission and retrieval. Submitting
// never touches the season aggregates; points appear only when the fixture is
// finalized.
type PredictionService struct {
	predictionRepo repository.PredictionRepository
	fixtureRepo    repository.FixtureRepository
	userRepo       repository.UserRepository

	// deadline is the lead time before kickoff after which submissions close.
	deadline time.Duration
	// nextFixtureOnly restricts submissions to the chronologically next
	// scheduled fixture of the fixture's season.
	nextFixtureOnly bool
}

// NewPredictionService creates a new prediction service.
func NewPredictionService(
	predictionRepo repository.PredictionRepository,
	fixtureRepo repository.FixtureRepository,
	userRepo repository.UserRepository,
	deadlineMinutes int,
	nextFixtureOnly bool,
) *PredictionService {
	if deadlineMinutes <= 0 {
		deadlineMinutes = 5
	}
	return &PredictionService{
		predictionRepo:  predictionRepo,
		fixtureRepo:     fixtureRepo,
		userRepo:        userRepo,
		deadline:        time.Duration(deadlineMinutes) * time.Minute,
		nextFixtureOnly: nextFixtureOnly,
	}
}

// SubmitPrediction creates or updates the user's prediction for a fixture.
// The latest submission before the deadline wins; a resubmission overwrites
// the previous one in place.
func (s *PredictionService) SubmitPrediction(userID, fixtureID uint, homePrediction, awayPrediction int) (*entity.Prediction, error) {
	if homePrediction < 0 || awayPrediction < 0 {
		return nil, fmt.Errorf("%w: predicted scores must be non-negative", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if !user.EmailVerified {
		return nil, fmt.Errorf("%w: verify your email address before predicting", apperrors.ErrForbidden)
	}

	fixture, err := s.fixtureRepo.GetByID(fixtureID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !fixture.IsOpenForPredictions(now, s.deadline) {
		return nil, fmt.Errorf("%w: predictions closed for this fixture", apperrors.ErrConflict)
	}

	if s.nextFixtureOnly {
		next, err := s.fixtureRepo.NextScheduled(fixture.SeasonID, now)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if next == nil || next.ID != fixture.ID {
			return nil, fmt.Errorf("%w: only the next fixture is open for predictions", apperrors.ErrForbidden)
		}
	}

	prediction, err := s.predictionRepo.GetByUserAndFixture(userID, fixtureID)
	switch {
	case err == nil:
		if prediction.IsScored() {
			return nil, fmt.Errorf("%w: prediction already scored", apperrors.ErrConflict)
		}
		prediction.HomePrediction = homePrediction
		prediction.AwayPrediction = awayPrediction
		if err := s.predictionRepo.Update(prediction); err != nil {
			return nil, err
		}
		return prediction, nil
	case errors.Is(err, apperrors.ErrNotFound):
		prediction = &entity.Prediction{
			UserID:         userID,
			FixtureID:      fixtureID,
			HomePrediction: homePrediction,
			AwayPrediction: awayPrediction,
		}
		if err := s.predictionRepo.Create(prediction); err != nil {
			// A concurrent first submission won the unique constraint race;
			// retry as an update.
			if errors.Is(err, apperrors.ErrConflict) {
				log.Printf("[PredictionService] Concurrent submission for user #%d fixture #%d, retrying as update", userID, fixtureID)
				return s.SubmitPrediction(userID, fixtureID, homePrediction, awayPrediction)
			}
			return nil, err
		}
		return prediction, nil
	default:
		return nil, err
	}
}

// IsOpen reports whether predictions are currently accepted for the fixture.
func (s *PredictionService) IsOpen(fixture *entity.Fixture) bool {
	return fixture.IsOpenForPredictions(time.Now(), s.deadline)
}

// Deadline returns the submission cutoff for a fixture.
func (s *PredictionService) Deadline(fixture *entity.Fixture) time.Time {
	return fixture.PredictionDeadline(s.deadline)
}

// GetPrediction returns the user's prediction for a fixture.
func (s *PredictionService) GetPrediction(userID, fixtureID uint) (*entity.Prediction, error) {
	return s.predictionRepo.GetByUserAndFixture(userID, fixtureID)
}

// ListUserPredictions returns the user's predictions joined with fixture
// details, newest kickoff first.
func (s *PredictionService) ListUserPredictions(userID uint) ([]repository.PredictionWithFixture, error) {
	return s.predictionRepo.ListByUser(userID)
}

// ListFixturePredictions returns every prediction for a fixture. Other
// users' picks are only exposed once the fixture is no longer open.
func (s *PredictionService) ListFixturePredictions(fixtureID uint) ([]entity.Prediction, error) {
	fixture, err := s.fixtureRepo.GetByID(fixtureID)
	if err != nil {
		return nil, err
	}
	if fixture.IsOpenForPredictions(time.Now(), s.deadline) {
		return nil, fmt.Errorf("%w: predictions are hidden until the deadline passes", apperrors.ErrForbidden)
	}
	return s.predictionRepo.ListByFixture(fixtureID)
}
