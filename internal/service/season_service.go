package service

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/predictor-api/internal/domain/entity"
	"github.com/yourusername/predictor-api/internal/domain/repository"
	apperrors "github.com/yourusername/predictor-api/internal/pkg/errors"
)

// SeasonService manages the season lifecycle. At most one season is current
// at any time.
type SeasonService struct {
	seasonRepo  repository.SeasonRepository
	fixtureRepo repository.FixtureRepository
	db          *gorm.DB
}

// NewSeasonService creates a new season service.
func NewSeasonService(
	seasonRepo repository.SeasonRepository,
	fixtureRepo repository.FixtureRepository,
	db *gorm.DB,
) *SeasonService {
	return &SeasonService{
		seasonRepo:  seasonRepo,
		fixtureRepo: fixtureRepo,
		db:          db,
	}
}

// CreateSeason adds a draft season.
func (s *SeasonService) CreateSeason(name string, startDate, endDate time.Time) (*entity.Season, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: season name is required", apperrors.ErrValidation)
	}
	if !endDate.After(startDate) {
		return nil, fmt.Errorf("%w: season end date must be after start date", apperrors.ErrValidation)
	}

	season := &entity.Season{
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    entity.SeasonStatusDraft,
	}
	if err := s.seasonRepo.Create(season); err != nil {
		return nil, err
	}
	return season, nil
}

// GetSeason returns a season by ID.
func (s *SeasonService) GetSeason(id uint) (*entity.Season, error) {
	return s.seasonRepo.GetByID(id)
}

// GetCurrentSeason returns the single current season.
func (s *SeasonService) GetCurrentSeason() (*entity.Season, error) {
	return s.seasonRepo.GetCurrent()
}

// ListSeasons returns all seasons, newest first.
func (s *SeasonService) ListSeasons() ([]entity.Season, error) {
	return s.seasonRepo.List()
}

// demoteCurrentSeasonUpdates closes out the outgoing current season. Clearing
// the flag alone would leave the old season active alongside the new one, so
// both columns change in one statement.
func demoteCurrentSeasonUpdates() map[string]interface{} {
	return map[string]interface{}{
		"is_current": false,
		"status":     entity.SeasonStatusArchived,
	}
}

// ActivateSeason makes the season current and active. The previous current
// season is archived in the same transaction, so at most one season is ever
// current or active.
func (s *SeasonService) ActivateSeason(id uint) (*entity.Season, error) {
	season, err := s.seasonRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if season.Status == entity.SeasonStatusArchived {
		return nil, fmt.Errorf("%w: archived seasons cannot be activated", apperrors.ErrValidation)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during ActivateSeason transaction: %v", r)
		}
	}()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Model(&entity.Season{}).Where("is_current = ? AND id <> ?", true, id).
		Updates(demoteCurrentSeasonUpdates()).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to demote current season: %w", err)
	}

	if err := tx.Model(&entity.Season{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_current": true,
			"status":     entity.SeasonStatusActive,
		}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to activate season: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	season.IsCurrent = true
	season.Status = entity.SeasonStatusActive
	log.Printf("[SeasonService] Season #%d (%s) is now current", season.ID, season.Name)
	return season, nil
}

// ArchiveSeason closes a non-current season. An archived season keeps its
// fixtures, predictions and standings for history. The current season cannot
// be archived directly; activating a successor archives it.
func (s *SeasonService) ArchiveSeason(id uint) (*entity.Season, error) {
	season, err := s.seasonRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if season.IsCurrent {
		return nil, fmt.Errorf("%w: the current season cannot be archived, activate another season first", apperrors.ErrConflict)
	}

	season.Status = entity.SeasonStatusArchived
	season.IsCurrent = false
	if err := s.seasonRepo.Update(season); err != nil {
		return nil, err
	}
	return season, nil
}

// DeleteSeason removes a draft season that has no fixtures.
func (s *SeasonService) DeleteSeason(id uint) error {
	season, err := s.seasonRepo.GetByID(id)
	if err != nil {
		return err
	}
	if season.Status != entity.SeasonStatusDraft {
		return fmt.Errorf("%w: only draft seasons can be deleted", apperrors.ErrValidation)
	}
	fixtures, err := s.fixtureRepo.ListBySeason(id)
	if err != nil {
		return err
	}
	if len(fixtures) > 0 {
		return fmt.Errorf("%w: season has %d fixtures", apperrors.ErrConflict, len(fixtures))
	}
	return s.seasonRepo.Delete(id)
}
