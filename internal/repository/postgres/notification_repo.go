package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/predictor-api/internal/domain/entity"
)

// NotificationRepo implements repository.NotificationRepository.
type NotificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo creates a new notification repository.
func NewNotificationRepo(db *gorm.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// Create inserts a notification record.
func (r *NotificationRepo) Create(notification *entity.Notification) error {
	return translateError(r.db.Create(notification).Error)
}

// MarkSent flags the notification as delivered.
func (r *NotificationRepo) MarkSent(id uint) error {
	now := time.Now()
	res := r.db.Model(&entity.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"sent": true, "sent_at": &now})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

// ListByUser returns the user's most recent notifications.
func (r *NotificationRepo) ListByUser(userID uint, limit int) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// CountByUser counts the user's notifications.
func (r *NotificationRepo) CountByUser(userID uint) (int64, error) {
	var total int64
	err := r.db.Model(&entity.Notification{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}
