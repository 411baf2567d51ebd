package models

import "time"

// Message is one directional row: exactly one sender and one receiver.
// A conversation is derived, never stored.
type Message struct {
	BaseModel
	SenderID   string     `gorm:"type:uuid;index:idx_messages_sender;not null" json:"sender_id"`
	ReceiverID string     `gorm:"type:uuid;index:idx_messages_receiver;not null" json:"receiver_id"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	IsRead     bool       `gorm:"default:false" json:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`

	Sender   *User `gorm:"foreignKey:SenderID" json:"-"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}

// CounterpartOf returns the other participant's id from the
// perspective of userID.
func (m *Message) CounterpartOf(userID string) string {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}

// Conversation is the folded summary of all messages exchanged with
// one counterpart. Built fresh on every fetch; unread_count is always
// derived from the row set, never incremented independently.
type Conversation struct {
	CounterpartID string         `json:"counterpart_id"`
	Counterpart   ProfileSummary `json:"counterpart"`
	LastMessage   string         `json:"last_message"`
	LastMessageAt time.Time      `json:"last_message_at"`
	UnreadCount   int64          `json:"unread_count"`
}
