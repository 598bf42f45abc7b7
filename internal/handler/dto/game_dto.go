package dto

import "time"

// CreateSeasonRequest is the admin payload for a new season.
type CreateSeasonRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// CreateFixtureRequest is the admin payload for a new fixture.
type CreateFixtureRequest struct {
	SeasonID    uint      `json:"season_id" binding:"required"`
	HomeTeam    string    `json:"home_team" binding:"required"`
	AwayTeam    string    `json:"away_team" binding:"required"`
	Competition string    `json:"competition" binding:"required"`
	KickoffTime time.Time `json:"kickoff_time" binding:"required"`
	Round       string    `json:"round"`
}

// UpdateFixtureRequest is the admin payload for editing a fixture.
type UpdateFixtureRequest struct {
	HomeTeam    string    `json:"home_team" binding:"required"`
	AwayTeam    string    `json:"away_team" binding:"required"`
	Competition string    `json:"competition" binding:"required"`
	KickoffTime time.Time `json:"kickoff_time" binding:"required"`
}

// RescheduleFixtureRequest carries the new kickoff for a postponed fixture.
type RescheduleFixtureRequest struct {
	KickoffTime time.Time `json:"kickoff_time" binding:"required"`
}

// FinalizeScoreRequest is the admin payload recording a final score.
type FinalizeScoreRequest struct {
	HomeScore *int `json:"home_score" binding:"required"`
	AwayScore *int `json:"away_score" binding:"required"`
}

// SubmitPredictionRequest is one score forecast.
type SubmitPredictionRequest struct {
	HomePrediction *int `json:"home_prediction" binding:"required"`
	AwayPrediction *int `json:"away_prediction" binding:"required"`
}

// CreateLeagueRequest is the payload for a new mini-league.
type CreateLeagueRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// JoinLeagueRequest carries an invite code.
type JoinLeagueRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

// SetAdminRequest grants or revokes admin rights.
type SetAdminRequest struct {
	IsAdmin *bool `json:"is_admin" binding:"required"`
}
