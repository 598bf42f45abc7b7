package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/predictor-api/internal/domain/entity"
)

// FixtureRepo implements repository.FixtureRepository.
type FixtureRepo struct {
	db *gorm.DB
}

// NewFixtureRepo creates a new fixture repository.
func NewFixtureRepo(db *gorm.DB) *FixtureRepo {
	return &FixtureRepo{db: db}
}

// Create inserts a new fixture.
func (r *FixtureRepo) Create(fixture *entity.Fixture) error {
	return translateError(r.db.Create(fixture).Error)
}

// GetByID returns a fixture by ID.
func (r *FixtureRepo) GetByID(id uint) (*entity.Fixture, error) {
	var fixture entity.Fixture
	if err := r.db.First(&fixture, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &fixture, nil
}

// Update saves the full fixture row.
func (r *FixtureRepo) Update(fixture *entity.Fixture) error {
	return translateError(r.db.Save(fixture).Error)
}

// Delete removes a fixture.
func (r *FixtureRepo) Delete(id uint) error {
	return translateError(r.db.Delete(&entity.Fixture{}, id).Error)
}

// ListBySeason returns a season's fixtures in kickoff order.
func (r *FixtureRepo) ListBySeason(seasonID uint) ([]entity.Fixture, error) {
	var fixtures []entity.Fixture
	err := r.db.Where("season_id = ?", seasonID).
		Order("kickoff_time ASC").
		Find(&fixtures).Error
	return fixtures, err
}

// NextScheduled returns the chronologically first scheduled fixture after now.
func (r *FixtureRepo) NextScheduled(seasonID uint, now time.Time) (*entity.Fixture, error) {
	var fixture entity.Fixture
	err := r.db.Where("season_id = ? AND status = ? AND kickoff_time > ?",
		seasonID, entity.FixtureStatusScheduled, now).
		Order("kickoff_time ASC").
		First(&fixture).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &fixture, nil
}

// Upcoming returns the next scheduled fixtures across seasons, soonest first.
func (r *FixtureRepo) Upcoming(now time.Time, limit int) ([]entity.Fixture, error) {
	var fixtures []entity.Fixture
	err := r.db.Where("status = ? AND kickoff_time > ?", entity.FixtureStatusScheduled, now).
		Order("kickoff_time ASC").
		Limit(limit).
		Find(&fixtures).Error
	return fixtures, err
}

// RecentFinished returns the last n finished fixtures of a season, newest
// kickoff first.
func (r *FixtureRepo) RecentFinished(seasonID uint, limit int) ([]entity.Fixture, error) {
	var fixtures []entity.Fixture
	err := r.db.Where("season_id = ? AND status = ?", seasonID, entity.FixtureStatusFinished).
		Order("kickoff_time DESC").
		Limit(limit).
		Find(&fixtures).Error
	return fixtures, err
}

// FinishedInMonth returns finished fixtures kicking off in the given
// calendar month.
func (r *FixtureRepo) FinishedInMonth(seasonID uint, year int, month time.Month) ([]entity.Fixture, error) {
	var fixtures []entity.Fixture
	err := r.db.Where("season_id = ? AND status = ?", seasonID, entity.FixtureStatusFinished).
		Where("EXTRACT(YEAR FROM kickoff_time) = ? AND EXTRACT(MONTH FROM kickoff_time) = ?", year, int(month)).
		Order("kickoff_time ASC").
		Find(&fixtures).Error
	return fixtures, err
}

// FinishedOrdered returns all finished fixtures of a season in ascending
// kickoff order, the replay order for stats rebuilds.
func (r *FixtureRepo) FinishedOrdered(seasonID uint) ([]entity.Fixture, error) {
	var fixtures []entity.Fixture
	err := r.db.Where("season_id = ? AND status = ? AND home_score IS NOT NULL AND away_score IS NOT NULL",
		seasonID, entity.FixtureStatusFinished).
		Order("kickoff_time ASC").
		Find(&fixtures).Error
	return fixtures, err
}

// Count returns the total number of fixtures.
func (r *FixtureRepo) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entity.Fixture{}).Count(&total).Error
	return total, err
}

// CountByStatus counts fixtures in the given status.
func (r *FixtureRepo) CountByStatus(status entity.FixtureStatus) (int64, error) {
	var total int64
	err := r.db.Model(&entity.Fixture{}).Where("status = ?", status).Count(&total).Error
	return total, err
}
