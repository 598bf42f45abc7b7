package repository

import (
	"github.com/yourusername/predictor-api/internal/domain/entity"
)

// NotificationRepository defines persistence operations for notification
// records.
type NotificationRepository interface {
	Create(notification *entity.Notification) error
	MarkSent(id uint) error
	ListByUser(userID uint, limit int) ([]entity.Notification, error)
	CountByUser(userID uint) (int64, error)
}
