package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User represents a registered player.
type User struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	Username            string `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email               string `gorm:"size:100;not null;uniqueIndex" json:"email"`
	PasswordHash        string `gorm:"size:100;column:password_hash" json:"-"`
	PasswordAuthEnabled bool   `gorm:"not null;default:true" json:"-"`
	AvatarURL           string `gorm:"size:255;not null;default:''" json:"avatar_url"`
	Provider            string `gorm:"size:20;not null;default:'email'" json:"-"` // email, twitter, google
	TwitterID           string `gorm:"size:50;default:''" json:"-"`
	GoogleID            string `gorm:"size:50;default:''" json:"-"`
	IsAdmin             bool   `gorm:"not null;default:false" json:"-"`
	EmailVerified       bool   `gorm:"not null;default:false" json:"email_verified"`
	EmailNotifications  bool   `gorm:"not null;default:true" json:"email_notifications"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the GORM table name.
func (User) TableName() string {
	return "users"
}

// BeforeSave hashes the password unless it is already a bcrypt hash.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if len(u.PasswordHash) > 0 && !strings.HasPrefix(u.PasswordHash, "$2a$") &&
		!strings.HasPrefix(u.PasswordHash, "$2b$") && !strings.HasPrefix(u.PasswordHash, "$2y$") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] failed to hash password for email=%s: %v", u.Email, err)
			return err
		}
		u.PasswordHash = string(hashed)
	}
	return nil
}

// CheckPassword reports whether the given password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
