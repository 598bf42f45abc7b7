package entity

import "time"

// SeasonStatus is the lifecycle state of a season.
type SeasonStatus string

const (
	SeasonStatusDraft    SeasonStatus = "draft"
	SeasonStatusActive   SeasonStatus = "active"
	SeasonStatusArchived SeasonStatus = "archived"
)

// Season is a scoring period. At most one season has IsCurrent=true at any
// time; the flip is done transactionally in SeasonService.Activate.
type Season struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"size:20;not null;uniqueIndex" json:"name"` // e.g. "2025-2026"
	StartDate time.Time    `gorm:"not null" json:"start_date"`
	EndDate   time.Time    `gorm:"not null" json:"end_date"`
	Status    SeasonStatus `gorm:"size:20;not null;default:'draft'" json:"status"`
	IsCurrent bool         `gorm:"not null;default:false;index" json:"is_current"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the GORM table name.
func (Season) TableName() string {
	return "seasons"
}
