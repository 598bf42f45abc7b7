package entity

import "time"

// MiniLeague is an invite-code-gated private leaderboard scoped to a season.
type MiniLeague struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text;default:''" json:"description,omitempty"`
	InviteCode  string `gorm:"size:20;not null;uniqueIndex" json:"invite_code"`
	CreatedBy   uint   `gorm:"not null;index" json:"created_by"`
	SeasonID    uint   `gorm:"not null;index" json:"season_id"`
	MaxMembers  int    `gorm:"not null;default:50" json:"max_members"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the GORM table name.
func (MiniLeague) TableName() string {
	return "mini_leagues"
}

// MiniLeagueMember joins a user to a mini-league. The (league, user) pair is
// unique; the creator is always the first member and starts as league admin.
type MiniLeagueMember struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	MiniLeagueID uint      `gorm:"not null;index;uniqueIndex:idx_league_user" json:"mini_league_id"`
	UserID       uint      `gorm:"not null;index;uniqueIndex:idx_league_user" json:"user_id"`
	JoinedAt     time.Time `gorm:"not null;autoCreateTime" json:"joined_at"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
}

// TableName sets the GORM table name.
func (MiniLeagueMember) TableName() string {
	return "mini_league_members"
}
