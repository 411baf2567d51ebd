package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"vfxhub_backend/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

// MessageRepository owns the messages table. Conversations are derived
// by the caller from ordered row sets; nothing conversation-shaped is
// stored here.
type MessageRepository interface {
	Create(message *models.Message) error
	FindByID(id string) (*models.Message, error)
	// FindAllForUser returns every row the user sent or received,
	// newest first. Input for the conversation fold.
	FindAllForUser(userID string) ([]models.Message, error)
	// FindConversation returns the full bidirectional history with one
	// counterpart, oldest first.
	FindConversation(userID, counterpartID string) ([]models.Message, error)
	// MarkConversationRead flips every unread message from counterpart
	// to user in one update and reports how many rows changed.
	MarkConversationRead(userID, counterpartID string) (int64, error)
	GetUnreadCount(userID string) (int64, error)
	DeleteConversation(userID, counterpartID string) error
}

type MessageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepositoryImpl) FindByID(id string) (*models.Message, error) {
	var message models.Message
	err := r.db.First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepositoryImpl) FindAllForUser(userID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) FindConversation(userID, counterpartID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, counterpartID, counterpartID, userID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) MarkConversationRead(userID, counterpartID string) (int64, error) {
	result := r.db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", counterpartID, userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *MessageRepositoryImpl) GetUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *MessageRepositoryImpl) DeleteConversation(userID, counterpartID string) error {
	return r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, counterpartID, counterpartID, userID).
		Delete(&models.Message{}).Error
}
