package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vfxhub_backend/internal/cache"
	"vfxhub_backend/internal/models"
	"vfxhub_backend/internal/repositories"
	"vfxhub_backend/pkg/apperrors"
)

func newNotificationService(db *gorm.DB, publisher EventPublisher) NotificationService {
	return NewNotificationService(
		repositories.NewNotificationRepository(db),
		cache.NewUnreadCache(nil),
		publisher,
	)
}

func TestNotificationService_MarkAsRead_OtherUsersRowIs404(t *testing.T) {
	db := setupTestDB(t)
	svc := newNotificationService(db, nil)
	owner := createTestUser(t, db, "owner@test.io", "Owner")
	intruder := createTestUser(t, db, "intruder@test.io", "Intruder")

	n := models.NewMessageNotification(owner.ID, "Someone", "msg-1")
	require.NoError(t, db.Create(n).Error)

	err := svc.MarkAsRead(intruder.ID, n.ID)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
}

func TestNotificationService_NotifyNewMessage(t *testing.T) {
	db := setupTestDB(t)
	publisher := &recordingPublisher{}
	svc := newNotificationService(db, publisher)
	bob := createTestUser(t, db, "bob@test.io", "Bob")

	require.NoError(t, svc.NotifyNewMessage(bob.ID, "Alice", "msg-1"))

	count, err := svc.GetUnreadCount(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	events := publisher.eventsFor(bob.ID)
	require.Len(t, events, 1)
	assert.Equal(t, EventNotificationNew, events[0].Event)
}

func TestNotificationService_GetUserNotifications_CountMatchesRows(t *testing.T) {
	db := setupTestDB(t)
	svc := newNotificationService(db, nil)
	bob := createTestUser(t, db, "bob@test.io", "Bob")

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.NotifyNewMessage(bob.ID, "Alice", "msg"))
	}

	list, err := svc.GetUserNotifications(bob.ID, repositories.NotificationCriteria{})
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 3)
	assert.Equal(t, int64(3), list.UnreadCount)

	require.NoError(t, svc.MarkAllAsRead(bob.ID))

	list, err = svc.GetUserNotifications(bob.ID, repositories.NotificationCriteria{})
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 3)
	assert.Equal(t, int64(0), list.UnreadCount)
}

func TestNotificationService_Delete(t *testing.T) {
	db := setupTestDB(t)
	svc := newNotificationService(db, nil)
	bob := createTestUser(t, db, "bob@test.io", "Bob")

	require.NoError(t, svc.NotifyNewMessage(bob.ID, "Alice", "msg"))

	list, err := svc.GetUserNotifications(bob.ID, repositories.NotificationCriteria{})
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)

	require.NoError(t, svc.Delete(bob.ID, list.Notifications[0].ID))

	list, err = svc.GetUserNotifications(bob.ID, repositories.NotificationCriteria{})
	require.NoError(t, err)
	assert.Empty(t, list.Notifications)
	assert.Equal(t, int64(0), list.UnreadCount)
}
