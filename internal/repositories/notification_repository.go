package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"vfxhub_backend/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

// DefaultNotificationLimit caps the initial inbox fetch.
const DefaultNotificationLimit = 50

// NotificationCriteria filters the inbox listing.
type NotificationCriteria struct {
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset     int    `form:"offset" binding:"omitempty,min=0"`
}

// NotificationStats summarizes a user's inbox.
type NotificationStats struct {
	Total       int64            `json:"total"`
	UnreadCount int64            `json:"unread_count"`
	ByType      map[string]int64 `json:"by_type"`
}

// NotificationRepository owns all reads and writes against the
// notifications table. Every query is scoped by the owning user id so
// a caller can never observe or mutate another user's rows; a row that
// exists but belongs to someone else is indistinguishable from a
// missing one.
type NotificationRepository interface {
	Create(notification *models.Notification) error
	CreateBulk(notifications []*models.Notification) error
	FindByID(userID, id string) (*models.Notification, error)
	FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, error)
	GetUnreadCount(userID string) (int64, error)
	GetStats(userID string) (*NotificationStats, error)
	MarkAsRead(userID, id string) error
	MarkAllAsRead(userID string) (int64, error)
	Delete(userID, id string) error
	DeleteRead(userID string, olderThan time.Time) error
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) CreateBulk(notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.CreateInBatches(notifications, 100).Error
}

func (r *NotificationRepositoryImpl) FindByID(userID, id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, error) {
	query := r.db.Where("user_id = ?", userID)

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}

	limit := criteria.Limit
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(criteria.Offset).
		Find(&notifications).Error

	return notifications, err
}

// GetUnreadCount is always computed from the row set. Counters are
// never stored or incremented independently, so they cannot drift or
// go negative.
func (r *NotificationRepositoryImpl) GetUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) GetStats(userID string) (*NotificationStats, error) {
	stats := &NotificationStats{ByType: make(map[string]int64)}

	if err := r.db.Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&stats.UnreadCount).Error; err != nil {
		return nil, err
	}

	var typeCounts []struct {
		Type  string
		Count int64
	}
	if err := r.db.Model(&models.Notification{}).
		Select("type, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("type").
		Scan(&typeCounts).Error; err != nil {
		return nil, err
	}
	for _, tc := range typeCounts {
		stats.ByType[tc.Type] = tc.Count
	}

	return stats, nil
}

// MarkAsRead flips a single row to read. The update only touches
// still-unread rows so read_at records the first transition; calling
// again on an already-read row is a no-op success.
func (r *NotificationRepositoryImpl) MarkAsRead(userID, id string) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND is_read = ?", id, userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Already read, or not this user's row. Disambiguate.
		var count int64
		if err := r.db.Model(&models.Notification{}).
			Where("id = ? AND user_id = ?", id, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotificationNotFound
		}
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(userID string) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) Delete(userID, id string) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) DeleteRead(userID string, olderThan time.Time) error {
	return r.db.Where("user_id = ? AND is_read = ? AND created_at < ?", userID, true, olderThan).
		Delete(&models.Notification{}).Error
}
