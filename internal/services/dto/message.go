package dto

import (
	"time"

	"vfxhub_backend/internal/models"
)

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required,uuid4"`
	Content    string `json:"content" validate:"required,notblank,max=5000"`
}

type MessageResponse struct {
	ID         string     `json:"id"`
	SenderID   string     `json:"sender_id"`
	ReceiverID string     `json:"receiver_id"`
	Content    string     `json:"content"`
	IsRead     bool       `json:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type ConversationListResponse struct {
	Conversations []models.Conversation `json:"conversations"`
	TotalUnread   int64                 `json:"total_unread"`
}

type ConversationResponse struct {
	CounterpartID string                `json:"counterpart_id"`
	Counterpart   models.ProfileSummary `json:"counterpart"`
	Messages      []MessageResponse     `json:"messages"`
}

func ToMessageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		IsRead:     m.IsRead,
		ReadAt:     m.ReadAt,
		CreatedAt:  m.CreatedAt,
	}
}
