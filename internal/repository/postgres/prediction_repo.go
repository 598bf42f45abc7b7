package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/predictor-api/internal/domain/entity"
	"github.com/yourusername/predictor-api/internal/domain/repository"
)

// PredictionRepo implements repository.PredictionRepository.
type PredictionRepo struct {
	db *gorm.DB
}

// NewPredictionRepo creates a new prediction repository.
func NewPredictionRepo(db *gorm.DB) *PredictionRepo {
	return &PredictionRepo{db: db}
}

// Create inserts a new prediction. A concurrent duplicate for the same
// (user, fixture) pair surfaces as ErrConflict.
func (r *PredictionRepo) Create(prediction *entity.Prediction) error {
	return translateError(r.db.Create(prediction).Error)
}

// Update saves the full prediction row.
func (r *PredictionRepo) Update(prediction *entity.Prediction) error {
	return translateError(r.db.Save(prediction).Error)
}

// GetByUserAndFixture returns the user's prediction for a fixture.
func (r *PredictionRepo) GetByUserAndFixture(userID, fixtureID uint) (*entity.Prediction, error) {
	var prediction entity.Prediction
	err := r.db.Where("user_id = ? AND fixture_id = ?", userID, fixtureID).
		First(&prediction).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &prediction, nil
}

// ListByFixture returns all predictions for a fixture.
func (r *PredictionRepo) ListByFixture(fixtureID uint) ([]entity.Prediction, error) {
	var predictions []entity.Prediction
	err := r.db.Where("fixture_id = ?", fixtureID).Find(&predictions).Error
	return predictions, err
}

// ListByUser returns the user's predictions joined with fixture details,
// newest kickoff first.
func (r *PredictionRepo) ListByUser(userID uint) ([]repository.PredictionWithFixture, error) {
	var rows []repository.PredictionWithFixture
	err := r.db.Table("predictions p").
		Select(`p.*,
			f.home_team AS home_team,
			f.away_team AS away_team,
			f.kickoff_time AS kickoff_time,
			f.status AS fixture_status,
			f.home_score AS fixture_home_score,
			f.away_score AS fixture_away_score`).
		Joins("JOIN fixtures f ON f.id = p.fixture_id").
		Where("p.user_id = ?", userID).
		Order("f.kickoff_time DESC").
		Scan(&rows).Error
	return rows, err
}

// CountByFixture counts predictions submitted for a fixture.
func (r *PredictionRepo) CountByFixture(fixtureID uint) (int64, error) {
	var total int64
	err := r.db.Model(&entity.Prediction{}).Where("fixture_id = ?", fixtureID).Count(&total).Error
	return total, err
}

// CountByUser counts all predictions a user has submitted.
func (r *PredictionRepo) CountByUser(userID uint) (int64, error) {
	var total int64
	err := r.db.Model(&entity.Prediction{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}

// Count returns the total number of predictions.
func (r *PredictionRepo) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entity.Prediction{}).Count(&total).Error
	return total, err
}

// CountDistinctPredictorsSince counts users who submitted or updated a
// prediction after the given time.
func (r *PredictionRepo) CountDistinctPredictorsSince(since time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&entity.Prediction{}).
		Where("updated_at > ?", since).
		Distinct("user_id").
		Count(&total).Error
	return total, err
}
