package repository

import (
	"github.com/yourusername/predictor-api/internal/domain/entity"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// GetByUsername matches case-insensitively; usernames are unique
	// regardless of case.
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	UpdateProfile(userID uint, updates map[string]interface{}) error
	SetAdmin(userID uint, isAdmin bool) error
	SetEmailVerified(userID uint) error
	List(limit, offset int) ([]entity.User, error)
	Count() (int64, error)
}
