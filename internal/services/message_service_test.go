package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vfxhub_backend/internal/cache"
	"vfxhub_backend/internal/models"
	"vfxhub_backend/internal/repositories"
	"vfxhub_backend/internal/services/dto"
	"vfxhub_backend/pkg/apperrors"
)

func newMessageService(db *gorm.DB, publisher EventPublisher) MessageService {
	return NewMessageService(
		db,
		repositories.NewMessageRepository(db),
		repositories.NewProfileRepository(db),
		repositories.NewUserRepository(db),
		cache.NewUnreadCache(nil),
		publisher,
	)
}

func seedMessageAt(t *testing.T, db *gorm.DB, senderID, receiverID, content string, createdAt time.Time) {
	t.Helper()
	m := &models.Message{SenderID: senderID, ReceiverID: receiverID, Content: content}
	m.CreatedAt = createdAt
	require.NoError(t, db.Create(m).Error)
}

func TestMessageService_SendMessage_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	publisher := &recordingPublisher{}
	svc := newMessageService(db, publisher)
	alice := createTestUser(t, db, "alice@test.io", "Alice")
	bob := createTestUser(t, db, "bob@test.io", "Bob")

	sent, err := svc.SendMessage(alice.ID, &dto.SendMessageRequest{
		ReceiverID: bob.ID,
		Content:    "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, sent.SenderID)
	assert.False(t, sent.IsRead)

	conv, err := svc.GetConversation(alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotEmpty(t, conv.Messages)
	last := conv.Messages[len(conv.Messages)-1]
	assert.Equal(t, "hello", last.Content)
	assert.Equal(t, alice.ID, last.SenderID)

	// Exactly one inbox notification lands for the receiver.
	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", bob.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeMessage, notifications[0].Type)
	require.NotNil(t, notifications[0].ReferenceID)
	assert.Equal(t, sent.ID, *notifications[0].ReferenceID)

	// Both the message and its notification were pushed live.
	events := publisher.eventsFor(bob.ID)
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Event)
	}
	assert.Contains(t, names, EventMessageNew)
	assert.Contains(t, names, EventNotificationNew)
}

func TestMessageService_SendMessage_WhitespaceRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newMessageService(db, nil)
	alice := createTestUser(t, db, "alice@test.io", "Alice")
	bob := createTestUser(t, db, "bob@test.io", "Bob")

	_, err := svc.SendMessage(alice.ID, &dto.SendMessageRequest{
		ReceiverID: bob.ID,
		Content:    "   ",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmptyMessage)

	var count int64
	require.NoError(t, db.Model(&models.Message{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestMessageService_SendMessage_SelfRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newMessageService(db, nil)
	alice := createTestUser(t, db, "alice@test.io", "Alice")

	_, err := svc.SendMessage(alice.ID, &dto.SendMessageRequest{
		ReceiverID: alice.ID,
		Content:    "note to self",
	})
	assert.ErrorIs(t, err, apperrors.ErrSelfMessage)
}

func TestMessageService_SendMessage_UnknownReceiver(t *testing.T) {
	db := setupTestDB(t)
	svc := newMessageService(db, nil)
	alice := createTestUser(t, db, "alice@test.io", "Alice")

	_, err := svc.SendMessage(alice.ID, &dto.SendMessageRequest{
		ReceiverID: "00000000-0000-0000-0000-000000000000",
		Content:    "hello?",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestMessageService_GetConversations_Fold(t *testing.T) {
	db := setupTestDB(t)
	svc := newMessageService(db, nil)
	alice := createTestUser(t, db, "alice@test.io", "Alice")
	bob := createTestUser(t, db, "bob@test.io", "Bob")

	base := time.Now().Add(-time.Hour)
	seedMessageAt(t, db, alice.ID, bob.ID, "first", base)
	seedMessageAt(t, db, alice.ID, bob.ID, "second", base.Add(time.Minute))
	seedMessageAt(t, db, alice.ID, bob.ID, "third", base.Add(2*time.Minute))

	list, err := svc.GetConversations(bob.ID)
	require.NoError(t, err)
	require.Len(t, list.Conversations, 1)

	conv := list.Conversations[0]
	assert.Equal(t, alice.ID, conv.CounterpartID)
	assert.Equal(t, "Alice", conv.Counterpart.DisplayName)
	assert.Equal(t, int64(3), conv.UnreadCount)
	assert.Equal(t, "third", conv.LastMessage)
	assert.Equal(t, int64(3), list.TotalUnread)
}

func TestMessageService_GetConversation_MarksRead(t *testing.T) {
	db := setupTestDB(t)
	publisher := &recordingPublisher{}
	svc := newMessageService(db, publisher)
	alice := createTestUser(t, db, "alice@test.io", "Alice")
	bob := createTestUser(t, db, "bob@test.io", "Bob")

	base := time.Now().Add(-time.Hour)
	seedMessageAt(t, db, alice.ID, bob.ID, "one", base)
	seedMessageAt(t, db, alice.ID, bob.ID, "two", base.Add(time.Minute))
	seedMessageAt(t, db, alice.ID, bob.ID, "three", base.Add(2*time.Minute))

	conv, err := svc.GetConversation(bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, conv.Messages, 3)

	// The fetch is the read action: a following summary shows zero unread.
	list, err := svc.GetConversations(bob.ID)
	require.NoError(t, err)
	require.Len(t, list.Conversations, 1)
	assert.Equal(t, int64(0), list.Conversations[0].UnreadCount)
	assert.Equal(t, int64(0), list.TotalUnread)

	count, err := svc.GetUnreadCount(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// The sender gets a read receipt.
	events := publisher.eventsFor(alice.ID)
	require.NotEmpty(t, events)
	assert.Equal(t, EventConversationRead, events[0].Event)
}

func TestMessageService_GetConversations_MultipleCounterparts(t *testing.T) {
	db := setupTestDB(t)
	svc := newMessageService(db, nil)
	alice := createTestUser(t, db, "alice@test.io", "Alice")
	bob := createTestUser(t, db, "bob@test.io", "Bob")
	carol := createTestUser(t, db, "carol@test.io", "Carol")

	base := time.Now().Add(-time.Hour)
	seedMessageAt(t, db, bob.ID, alice.ID, "from bob", base)
	seedMessageAt(t, db, carol.ID, alice.ID, "from carol", base.Add(time.Minute))
	seedMessageAt(t, db, alice.ID, bob.ID, "to bob", base.Add(2*time.Minute))

	list, err := svc.GetConversations(alice.ID)
	require.NoError(t, err)
	require.Len(t, list.Conversations, 2)

	// Newest-first: the bob thread was touched last.
	assert.Equal(t, bob.ID, list.Conversations[0].CounterpartID)
	assert.Equal(t, "to bob", list.Conversations[0].LastMessage)
	assert.Equal(t, int64(1), list.Conversations[0].UnreadCount)
	assert.Equal(t, carol.ID, list.Conversations[1].CounterpartID)
	assert.Equal(t, int64(2), list.TotalUnread)
}
