package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/predictor-api/internal/domain/entity"
	"github.com/yourusername/predictor-api/internal/domain/repository"
	apperrors "github.com/yourusername/predictor-api/internal/pkg/errors"
)

// FixtureService manages the fixture calendar and score finalization.
type FixtureService struct {
	fixtureRepo      repository.FixtureRepository
	predictionRepo   repository.PredictionRepository
	seasonRepo       repository.SeasonRepository
	notificationRepo repository.NotificationRepository
	statsService     *StatsService
	cacheRepo        repository.CacheRepository
	db               *gorm.DB
}

// NewFixtureService creates a new fixture service.
func NewFixtureService(
	fixtureRepo repository.FixtureRepository,
	predictionRepo repository.PredictionRepository,
	seasonRepo repository.SeasonRepository,
	notificationRepo repository.NotificationRepository,
	statsService *StatsService,
	cacheRepo repository.CacheRepository,
	db *gorm.DB,
) *FixtureService {
	return &FixtureService{
		fixtureRepo:      fixtureRepo,
		predictionRepo:   predictionRepo,
		seasonRepo:       seasonRepo,
		notificationRepo: notificationRepo,
		statsService:     statsService,
		cacheRepo:        cacheRepo,
		db:               db,
	}
}

// CreateFixture adds a scheduled fixture to a season's calendar.
func (s *FixtureService) CreateFixture(fixture *entity.Fixture) error {
	if fixture.HomeTeam == "" || fixture.AwayTeam == "" {
		return fmt.Errorf("%w: home and away teams are required", apperrors.ErrValidation)
	}
	if fixture.KickoffTime.IsZero() {
		return fmt.Errorf("%w: kickoff time is required", apperrors.ErrValidation)
	}
	if !fixture.Competition.Valid() {
		return fmt.Errorf("%w: unknown competition %q", apperrors.ErrValidation, fixture.Competition)
	}
	if _, err := s.seasonRepo.GetByID(fixture.SeasonID); err != nil {
		return err
	}

	fixture.Status = entity.FixtureStatusScheduled
	fixture.OriginalKickoffTime = fixture.KickoffTime
	fixture.HomeScore = nil
	fixture.AwayScore = nil
	return s.fixtureRepo.Create(fixture)
}

// GetFixture returns a fixture by ID.
func (s *FixtureService) GetFixture(id uint) (*entity.Fixture, error) {
	return s.fixtureRepo.GetByID(id)
}

// ListBySeason returns a season's fixtures in kickoff order.
func (s *FixtureService) ListBySeason(seasonID uint) ([]entity.Fixture, error) {
	return s.fixtureRepo.ListBySeason(seasonID)
}

// NextFixture returns the next scheduled fixture of the current season.
func (s *FixtureService) NextFixture() (*entity.Fixture, error) {
	season, err := s.seasonRepo.GetCurrent()
	if err != nil {
		return nil, err
	}
	return s.fixtureRepo.NextScheduled(season.ID, time.Now())
}

// UpcomingFixtures returns the next fixtures on the calendar.
func (s *FixtureService) UpcomingFixtures(limit int) ([]entity.Fixture, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.fixtureRepo.Upcoming(time.Now(), limit)
}

// RecentResults returns the latest finished fixtures of the current season,
// newest first.
func (s *FixtureService) RecentResults(limit int) ([]entity.Fixture, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	season, err := s.seasonRepo.GetCurrent()
	if err != nil {
		return nil, err
	}
	return s.fixtureRepo.RecentFinished(season.ID, limit)
}

// UpdateFixture edits the details of a not-yet-finished fixture.
func (s *FixtureService) UpdateFixture(id uint, homeTeam, awayTeam string, kickoff time.Time, competition entity.Competition) (*entity.Fixture, error) {
	fixture, err := s.fixtureRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if fixture.Status == entity.FixtureStatusFinished {
		return nil, fmt.Errorf("%w: finished fixtures cannot be edited", apperrors.ErrValidation)
	}
	if !competition.Valid() {
		return nil, fmt.Errorf("%w: unknown competition %q", apperrors.ErrValidation, competition)
	}

	fixture.HomeTeam = homeTeam
	fixture.AwayTeam = awayTeam
	fixture.KickoffTime = kickoff
	fixture.Competition = competition
	if err := s.fixtureRepo.Update(fixture); err != nil {
		return nil, err
	}
	return fixture, nil
}

// PostponeFixture marks a scheduled fixture as postponed. Existing
// predictions stay attached and unscored.
func (s *FixtureService) PostponeFixture(id uint) (*entity.Fixture, error) {
	fixture, err := s.fixtureRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if fixture.Status != entity.FixtureStatusScheduled {
		return nil, fmt.Errorf("%w: only scheduled fixtures can be postponed", apperrors.ErrValidation)
	}

	fixture.Status = entity.FixtureStatusPostponed
	if err := s.fixtureRepo.Update(fixture); err != nil {
		return nil, err
	}
	return fixture, nil
}

// RescheduleFixture moves a postponed fixture back onto the calendar with a
// new kickoff time.
func (s *FixtureService) RescheduleFixture(id uint, kickoff time.Time) (*entity.Fixture, error) {
	fixture, err := s.fixtureRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if fixture.Status != entity.FixtureStatusPostponed {
		return nil, fmt.Errorf("%w: only postponed fixtures can be rescheduled", apperrors.ErrValidation)
	}

	fixture.Status = entity.FixtureStatusScheduled
	fixture.KickoffTime = kickoff
	if err := s.fixtureRepo.Update(fixture); err != nil {
		return nil, err
	}
	return fixture, nil
}

// DeleteFixture removes a fixture without predictions. A fixture with
// submitted predictions is never deleted.
func (s *FixtureService) DeleteFixture(id uint) error {
	if _, err := s.fixtureRepo.GetByID(id); err != nil {
		return err
	}
	count, err := s.predictionRepo.CountByFixture(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: fixture has %d predictions", apperrors.ErrConflict, count)
	}
	return s.fixtureRepo.Delete(id)
}

// FinalizeScore records the final score of a fixture and, in the same
// transaction, scores its predictions, folds them into the season
// aggregates and recomputes the cached positions. A fixture can only be
// finalized once; corrections go through the season rebuild.
func (s *FixtureService) FinalizeScore(fixtureID uint, homeScore, awayScore int) (*entity.Fixture, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, fmt.Errorf("%w: scores must be non-negative", apperrors.ErrValidation)
	}

	fixture, err := s.fixtureRepo.GetByID(fixtureID)
	if err != nil {
		return nil, err
	}
	if fixture.Status == entity.FixtureStatusPostponed {
		return nil, fmt.Errorf("%w: postponed fixtures must be rescheduled before finalizing", apperrors.ErrValidation)
	}
	if fixture.Status == entity.FixtureStatusFinished {
		return nil, fmt.Errorf("%w: fixture already finalized", apperrors.ErrConflict)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during FinalizeScore transaction: %v", r)
		}
	}()
	if tx.Error != nil {
		return nil, tx.Error
	}

	fixture.HomeScore = &homeScore
	fixture.AwayScore = &awayScore
	fixture.Status = entity.FixtureStatusFinished
	if err := tx.Save(fixture).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to save final score: %w", err)
	}

	scored, err := s.statsService.applyFixtureInTx(tx, fixture)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := s.statsService.recomputePositionsInTx(tx, fixture.SeasonID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	log.Printf("[FixtureService] Finalized fixture #%d (%s %d-%d %s), scored %d predictions",
		fixture.ID, fixture.HomeTeam, homeScore, awayScore, fixture.AwayTeam, scored)

	if err := s.cacheRepo.Delete(leaderboardCacheKey(fixture.SeasonID)); err != nil {
		log.Printf("[FixtureService] Leaderboard cache invalidation failed for season #%d: %v", fixture.SeasonID, err)
	}

	s.notifyResultAvailable(fixture)
	return fixture, nil
}

// notifyResultAvailable records a result notification for every predictor of
// the fixture. Notification failures never affect the finalized result.
func (s *FixtureService) notifyResultAvailable(fixture *entity.Fixture) {
	predictions, err := s.predictionRepo.ListByFixture(fixture.ID)
	if err != nil {
		log.Printf("[FixtureService] Failed to load predictions for notifications on fixture #%d: %v", fixture.ID, err)
		return
	}

	message := fmt.Sprintf("Full time: %s %d-%d %s. Your points are in.",
		fixture.HomeTeam, *fixture.HomeScore, *fixture.AwayScore, fixture.AwayTeam)

	for _, p := range predictions {
		fixtureID := fixture.ID
		notification := &entity.Notification{
			ExternalID: uuid.NewString(),
			UserID:     p.UserID,
			FixtureID:  &fixtureID,
			Type:       entity.NotificationTypeResultAvailable,
			Message:    message,
		}
		if err := s.notificationRepo.Create(notification); err != nil {
			log.Printf("[FixtureService] Failed to create result notification for user #%d: %v", p.UserID, err)
		}
	}
}
