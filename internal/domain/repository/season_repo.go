package repository

import (
	"github.com/yourusername/predictor-api/internal/domain/entity"
)

// SeasonRepository defines persistence operations for seasons.
type SeasonRepository interface {
	Create(season *entity.Season) error
	GetByID(id uint) (*entity.Season, error)
	GetByName(name string) (*entity.Season, error)
	// GetCurrent returns the single season with is_current=true, or
	// ErrNotFound when no season is current.
	GetCurrent() (*entity.Season, error)
	List() ([]entity.Season, error)
	Update(season *entity.Season) error
	Delete(id uint) error
}
