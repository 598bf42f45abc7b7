package entity

import "time"

// Prediction is one user's forecast for one fixture. The (user, fixture) pair
// is unique; a later submission updates the existing row. PointsEarned stays
// nil until the fixture is finalized.
type Prediction struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	UserID         uint `gorm:"not null;index;uniqueIndex:idx_user_fixture" json:"user_id"`
	FixtureID      uint `gorm:"not null;index;uniqueIndex:idx_user_fixture" json:"fixture_id"`
	HomePrediction int  `gorm:"not null" json:"home_prediction"`
	AwayPrediction int  `gorm:"not null" json:"away_prediction"`
	PointsEarned   *int `json:"points_earned"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the GORM table name.
func (Prediction) TableName() string {
	return "predictions"
}

// IsScored reports whether points have been awarded.
func (p *Prediction) IsScored() bool {
	return p.PointsEarned != nil
}
