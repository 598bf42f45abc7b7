package repository

import (
	"time"

	"github.com/yourusername/predictor-api/internal/domain/entity"
)

// FixtureRepository defines persistence operations for fixtures.
type FixtureRepository interface {
	Create(fixture *entity.Fixture) error
	GetByID(id uint) (*entity.Fixture, error)
	Update(fixture *entity.Fixture) error
	Delete(id uint) error
	ListBySeason(seasonID uint) ([]entity.Fixture, error)
	// NextScheduled returns the chronologically first scheduled fixture with a
	// kickoff after now. It is the one fixture open for predictions under the
	// next-fixture-only policy.
	NextScheduled(seasonID uint, now time.Time) (*entity.Fixture, error)
	Upcoming(now time.Time, limit int) ([]entity.Fixture, error)
	// RecentFinished returns the last n finished fixtures of a season, newest
	// first. Also serves as the form-leaderboard window.
	RecentFinished(seasonID uint, limit int) ([]entity.Fixture, error)
	// FinishedInMonth returns finished fixtures whose kickoff falls in the
	// given calendar month.
	FinishedInMonth(seasonID uint, year int, month time.Month) ([]entity.Fixture, error)
	// FinishedOrdered returns all finished fixtures of a season in kickoff
	// order ascending, the replay order for stats rebuilds.
	FinishedOrdered(seasonID uint) ([]entity.Fixture, error)
	Count() (int64, error)
	CountByStatus(status entity.FixtureStatus) (int64, error)
}
