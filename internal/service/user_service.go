package service

import (
	"fmt"
	"strings"

	"github.com/yourusername/predictor-api/internal/domain/entity"
	"github.com/yourusername/predictor-api/internal/domain/repository"
	apperrors "github.com/yourusername/predictor-api/internal/pkg/errors"
)

// UserService provides profile operations.
type UserService struct {
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, notificationRepo repository.NotificationRepository) *UserService {
	return &UserService{userRepo: userRepo, notificationRepo: notificationRepo}
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateProfile updates username, avatar and notification preferences.
func (s *UserService) UpdateProfile(userID uint, username, avatarURL *string, emailNotifications *bool) (*entity.User, error) {
	updates := map[string]interface{}{}

	if username != nil {
		name := strings.TrimSpace(*username)
		if len(name) < 3 || len(name) > 30 {
			return nil, fmt.Errorf("%w: username must be 3-30 characters", apperrors.ErrValidation)
		}
		updates["username"] = name
	}
	if avatarURL != nil {
		updates["avatar_url"] = *avatarURL
	}
	if emailNotifications != nil {
		updates["email_notifications"] = *emailNotifications
	}

	if len(updates) > 0 {
		if err := s.userRepo.UpdateProfile(userID, updates); err != nil {
			return nil, err
		}
	}
	return s.userRepo.GetByID(userID)
}

// ChangePassword verifies the current password and sets a new one.
func (s *UserService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if !user.PasswordAuthEnabled {
		return fmt.Errorf("%w: password auth is disabled for this account", apperrors.ErrForbidden)
	}
	if !user.CheckPassword(currentPassword) {
		return fmt.Errorf("%w: current password is incorrect", apperrors.ErrUnauthorized)
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidation)
	}

	user.PasswordHash = newPassword // hashed by the BeforeSave hook
	return s.userRepo.Update(user)
}

// ListNotifications returns the user's most recent notifications.
func (s *UserService) ListNotifications(userID uint, limit int) ([]entity.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.notificationRepo.ListByUser(userID, limit)
}
