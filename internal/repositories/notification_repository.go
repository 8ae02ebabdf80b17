package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"notifyhub_backend/internal/models"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// NotificationRepository is the persistence contract for notification rows.
// It never leaks gorm errors upward: not-found becomes the sentinel above,
// everything else is returned as-is for the service to classify.
type NotificationRepository interface {
	Save(notification *models.Notification) error
	FindByID(id uint) (*models.Notification, error)
	FindByUserID(userID uint) ([]models.Notification, error)
	Delete(id uint) error
	DeleteMultiple(ids []uint) (int64, error)
	UpdateMultiple(ids []uint, fields map[string]interface{}) (int64, error)
	MarkAllRead(userID uint) (int64, error)
	CountUnread(userID uint) (int64, error)
	DeleteReadOlderThan(cutoff time.Time) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Save inserts a new row or updates an existing one. Generated fields
// (id, created_at) are populated on the passed record after insert.
func (r *notificationRepository) Save(notification *models.Notification) error {
	return r.db.Save(notification).Error
}

func (r *notificationRepository) FindByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

// FindByUserID returns the user's notifications, newest first.
func (r *notificationRepository) FindByUserID(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) Delete(id uint) error {
	result := r.db.Where("id = ?", id).Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// DeleteMultiple removes all rows matching ids and reports how many went.
func (r *notificationRepository) DeleteMultiple(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("id IN ?", ids).Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

// UpdateMultiple applies fields to all rows matching ids and reports how
// many rows were touched.
func (r *notificationRepository) UpdateMultiple(ids []uint, fields map[string]interface{}) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Notification{}).
		Where("id IN ?", ids).
		Updates(fields)
	return result.RowsAffected, result.Error
}

// MarkAllRead flips every unread row belonging to userID.
func (r *notificationRepository) MarkAllRead(userID uint) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// DeleteReadOlderThan purges read notifications created before cutoff.
// Used by the retention worker only.
func (r *notificationRepository) DeleteReadOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}
