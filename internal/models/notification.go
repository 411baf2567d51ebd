package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification types. Open set; the type tag drives client routing
// and icon choice only.
const (
	NotificationTypeMessage         = "message"
	NotificationTypeFollow          = "follow"
	NotificationTypeJobPosted       = "job_posted"
	NotificationTypeProposal        = "proposal"
	NotificationTypeProposalDecided = "proposal_decided"
	NotificationTypeMilestone       = "milestone"
	NotificationTypePayment         = "payment"
	NotificationTypeSystem          = "system"
)

// Notification is a per-user inbox row. Only is_read / read_at are
// ever mutated after insert; created_at is the sole ordering key.
type Notification struct {
	BaseModel
	UserID        string         `gorm:"type:uuid;index:idx_notifications_user_created;not null" json:"user_id"`
	Type          string         `gorm:"type:varchar(40);not null" json:"type"`
	Title         string         `gorm:"not null" json:"title"`
	Content       string         `gorm:"type:text" json:"content,omitempty"`
	ReferenceID   *string        `gorm:"type:uuid" json:"reference_id,omitempty"`
	ReferenceType *string        `gorm:"type:varchar(40)" json:"reference_type,omitempty"`
	Payload       datatypes.JSON `gorm:"type:jsonb" json:"payload,omitempty"`
	IsRead        bool           `gorm:"default:false;index" json:"is_read"`
	ReadAt        *time.Time     `json:"read_at,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NewMessageNotification builds the inbox row written alongside every
// delivered direct message.
func NewMessageNotification(receiverID, senderName, messageID string) *Notification {
	refType := "message"
	return &Notification{
		UserID:        receiverID,
		Type:          NotificationTypeMessage,
		Title:         "New message",
		Content:       senderName + " sent you a message",
		ReferenceID:   &messageID,
		ReferenceType: &refType,
	}
}

func NewProposalNotification(ownerID, applicantName, jobTitle, proposalID string) *Notification {
	refType := "proposal"
	return &Notification{
		UserID:        ownerID,
		Type:          NotificationTypeProposal,
		Title:         "New proposal",
		Content:       applicantName + " applied to \"" + jobTitle + "\"",
		ReferenceID:   &proposalID,
		ReferenceType: &refType,
	}
}

func NewProposalDecisionNotification(applicantID, jobTitle, status, proposalID string) *Notification {
	refType := "proposal"
	return &Notification{
		UserID:        applicantID,
		Type:          NotificationTypeProposalDecided,
		Title:         "Proposal " + status,
		Content:       "Your proposal for \"" + jobTitle + "\" was " + status,
		ReferenceID:   &proposalID,
		ReferenceType: &refType,
	}
}
