package entity

import "time"

// Notification kinds.
const (
	NotificationTypeEmailVerification = "email_verification"
	NotificationTypeResultAvailable   = "result_available"
)

// Notification records an outbound message to a user. Rows are removed as
// part of the account deletion cascade.
type Notification struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ExternalID   string     `gorm:"size:64;not null;index" json:"external_id"` // uuid, correlates with the mail provider
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	FixtureID    *uint      `gorm:"index" json:"fixture_id,omitempty"`
	Type         string     `gorm:"size:50;not null" json:"type"`
	Message      string     `gorm:"type:text;not null" json:"message"`
	Sent         bool       `gorm:"not null;default:false" json:"sent"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the GORM table name.
func (Notification) TableName() string {
	return "notifications"
}
