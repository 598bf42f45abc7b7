package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/predictor-api/internal/domain/entity"
)

// SeasonRepo implements repository.SeasonRepository.
type SeasonRepo struct {
	db *gorm.DB
}

// NewSeasonRepo creates a new season repository.
func NewSeasonRepo(db *gorm.DB) *SeasonRepo {
	return &SeasonRepo{db: db}
}

// Create inserts a new season. Duplicate names surface as ErrConflict.
func (r *SeasonRepo) Create(season *entity.Season) error {
	return translateError(r.db.Create(season).Error)
}

// GetByID returns a season by ID.
func (r *SeasonRepo) GetByID(id uint) (*entity.Season, error) {
	var season entity.Season
	if err := r.db.First(&season, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &season, nil
}

// GetByName returns a season by name.
func (r *SeasonRepo) GetByName(name string) (*entity.Season, error) {
	var season entity.Season
	if err := r.db.Where("name = ?", name).First(&season).Error; err != nil {
		return nil, translateError(err)
	}
	return &season, nil
}

// GetCurrent returns the single current season.
func (r *SeasonRepo) GetCurrent() (*entity.Season, error) {
	var season entity.Season
	if err := r.db.Where("is_current = ?", true).First(&season).Error; err != nil {
		return nil, translateError(err)
	}
	return &season, nil
}

// List returns all seasons, newest start date first.
func (r *SeasonRepo) List() ([]entity.Season, error) {
	var seasons []entity.Season
	err := r.db.Order("start_date DESC").Find(&seasons).Error
	return seasons, err
}

// Update saves the full season row.
func (r *SeasonRepo) Update(season *entity.Season) error {
	return translateError(r.db.Save(season).Error)
}

// Delete removes a season.
func (r *SeasonRepo) Delete(id uint) error {
	return translateError(r.db.Delete(&entity.Season{}, id).Error)
}
