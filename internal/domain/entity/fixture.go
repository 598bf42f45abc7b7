package entity

import "time"

// FixtureStatus is the lifecycle state of a fixture.
type FixtureStatus string

const (
	FixtureStatusScheduled FixtureStatus = "scheduled"
	FixtureStatusLive      FixtureStatus = "live"
	FixtureStatusFinished  FixtureStatus = "finished"
	FixtureStatusPostponed FixtureStatus = "postponed"
)

// Competition is the competition a fixture belongs to.
type Competition string

const (
	CompetitionChampionship Competition = "CHAMPIONSHIP"
	CompetitionFACup        Competition = "FA_CUP"
	CompetitionLeagueCup    Competition = "LEAGUE_CUP"
	CompetitionPlayoff      Competition = "PLAYOFF"
)

// Valid reports whether the competition is a known value.
func (c Competition) Valid() bool {
	switch c {
	case CompetitionChampionship, CompetitionFACup, CompetitionLeagueCup, CompetitionPlayoff:
		return true
	}
	return false
}

// Fixture is a scheduled match within a season. HomeScore/AwayScore stay nil
// until an admin finalizes the result.
type Fixture struct {
	ID                  uint          `gorm:"primaryKey" json:"id"`
	SeasonID            uint          `gorm:"not null;index" json:"season_id"`
	HomeTeam            string        `gorm:"size:100;not null" json:"home_team"`
	AwayTeam            string        `gorm:"size:100;not null" json:"away_team"`
	Competition         Competition   `gorm:"size:20;not null" json:"competition"`
	KickoffTime         time.Time     `gorm:"not null;index" json:"kickoff_time"`
	OriginalKickoffTime time.Time     `gorm:"not null" json:"original_kickoff_time"`
	Status              FixtureStatus `gorm:"size:20;not null;default:'scheduled';index" json:"status"`
	HomeScore           *int          `json:"home_score,omitempty"`
	AwayScore           *int          `json:"away_score,omitempty"`
	Round               string        `gorm:"size:50;default:''" json:"round,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the GORM table name.
func (Fixture) TableName() string {
	return "fixtures"
}

// PredictionDeadline returns the cutoff before kickoff after which
// predictions are rejected.
func (f *Fixture) PredictionDeadline(leadTime time.Duration) time.Time {
	return f.KickoffTime.Add(-leadTime)
}

// IsOpenForPredictions reports whether a prediction may still be placed at
// the given moment.
func (f *Fixture) IsOpenForPredictions(now time.Time, leadTime time.Duration) bool {
	return f.Status == FixtureStatusScheduled && now.Before(f.PredictionDeadline(leadTime))
}
