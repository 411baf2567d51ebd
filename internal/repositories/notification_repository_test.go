package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vfxhub_backend/internal/models"
)

func seedNotification(t *testing.T, db *gorm.DB, userID string, read bool, createdAt time.Time) *models.Notification {
	t.Helper()

	n := &models.Notification{
		UserID: userID,
		Type:   models.NotificationTypeSystem,
		Title:  "test",
		IsRead: read,
	}
	n.CreatedAt = createdAt
	if read {
		now := time.Now()
		n.ReadAt = &now
	}
	require.NoError(t, db.Create(n).Error)
	return n
}

func TestNotificationRepository_MarkAsRead_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	user := createTestUser(t, db, "a@test.io")

	n := seedNotification(t, db, user.ID, false, time.Now())

	require.NoError(t, repo.MarkAsRead(user.ID, n.ID))

	got, err := repo.FindByID(user.ID, n.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRead)
	require.NotNil(t, got.ReadAt)
	firstReadAt := *got.ReadAt

	// Second call succeeds without touching the row.
	require.NoError(t, repo.MarkAsRead(user.ID, n.ID))

	got, err = repo.FindByID(user.ID, n.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRead)
	require.NotNil(t, got.ReadAt)
	assert.WithinDuration(t, firstReadAt, *got.ReadAt, time.Millisecond)

	count, err := repo.GetUnreadCount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestNotificationRepository_MarkAsRead_OtherUsersRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	owner := createTestUser(t, db, "owner@test.io")
	intruder := createTestUser(t, db, "intruder@test.io")

	n := seedNotification(t, db, owner.ID, false, time.Now())

	err := repo.MarkAsRead(intruder.ID, n.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	// Owner's row is untouched.
	got, err := repo.FindByID(owner.ID, n.ID)
	require.NoError(t, err)
	assert.False(t, got.IsRead)
}

func TestNotificationRepository_MarkAllAsRead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	user := createTestUser(t, db, "a@test.io")

	for i := 0; i < 5; i++ {
		seedNotification(t, db, user.ID, false, time.Now())
	}
	for i := 0; i < 2; i++ {
		seedNotification(t, db, user.ID, true, time.Now())
	}

	updated, err := repo.MarkAllAsRead(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), updated)

	count, err := repo.GetUnreadCount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	all, err := repo.FindUserNotifications(user.ID, NotificationCriteria{})
	require.NoError(t, err)
	require.Len(t, all, 7)
	for _, n := range all {
		assert.True(t, n.IsRead)
		assert.NotNil(t, n.ReadAt)
	}
}

func TestNotificationRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	user := createTestUser(t, db, "a@test.io")

	n := seedNotification(t, db, user.ID, false, time.Now())
	keep := seedNotification(t, db, user.ID, false, time.Now())

	require.NoError(t, repo.Delete(user.ID, n.ID))

	all, err := repo.FindUserNotifications(user.ID, NotificationCriteria{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)

	// Unread count is derived, so deleting an unread row simply drops
	// it from the count.
	count, err := repo.GetUnreadCount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, repo.Delete(user.ID, n.ID), ErrNotificationNotFound)
}

func TestNotificationRepository_Delete_OtherUsersRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	owner := createTestUser(t, db, "owner@test.io")
	intruder := createTestUser(t, db, "intruder@test.io")

	n := seedNotification(t, db, owner.ID, false, time.Now())

	assert.ErrorIs(t, repo.Delete(intruder.ID, n.ID), ErrNotificationNotFound)

	_, err := repo.FindByID(owner.ID, n.ID)
	assert.NoError(t, err)
}

func TestNotificationRepository_FindUserNotifications_Ordering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	user := createTestUser(t, db, "a@test.io")

	base := time.Now().Add(-time.Hour)
	oldest := seedNotification(t, db, user.ID, false, base)
	middle := seedNotification(t, db, user.ID, false, base.Add(time.Minute))
	newest := seedNotification(t, db, user.ID, false, base.Add(2*time.Minute))

	all, err := repo.FindUserNotifications(user.ID, NotificationCriteria{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, newest.ID, all[0].ID)
	assert.Equal(t, middle.ID, all[1].ID)
	assert.Equal(t, oldest.ID, all[2].ID)

	limited, err := repo.FindUserNotifications(user.ID, NotificationCriteria{Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, newest.ID, limited[0].ID)
}

func TestNotificationRepository_FindUserNotifications_UnreadOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	user := createTestUser(t, db, "a@test.io")
	other := createTestUser(t, db, "b@test.io")

	seedNotification(t, db, user.ID, false, time.Now())
	seedNotification(t, db, user.ID, true, time.Now())
	seedNotification(t, db, other.ID, false, time.Now())

	unread, err := repo.FindUserNotifications(user.ID, NotificationCriteria{UnreadOnly: true})
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	count, err := repo.GetUnreadCount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
