package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vfxhub_backend/internal/models"
)

func seedMessage(t *testing.T, db *gorm.DB, senderID, receiverID, content string, read bool, createdAt time.Time) *models.Message {
	t.Helper()

	m := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		IsRead:     read,
	}
	m.CreatedAt = createdAt
	require.NoError(t, db.Create(m).Error)
	return m
}

func TestMessageRepository_FindConversation_Bidirectional(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	alice := createTestUser(t, db, "alice@test.io")
	bob := createTestUser(t, db, "bob@test.io")
	carol := createTestUser(t, db, "carol@test.io")

	base := time.Now().Add(-time.Hour)
	seedMessage(t, db, alice.ID, bob.ID, "hi bob", false, base)
	seedMessage(t, db, bob.ID, alice.ID, "hi alice", false, base.Add(time.Minute))
	seedMessage(t, db, alice.ID, carol.ID, "hi carol", false, base.Add(2*time.Minute))

	history, err := repo.FindConversation(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "hi bob", history[0].Content)
	assert.Equal(t, "hi alice", history[1].Content)
}

func TestMessageRepository_MarkConversationRead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	alice := createTestUser(t, db, "alice@test.io")
	bob := createTestUser(t, db, "bob@test.io")

	base := time.Now().Add(-time.Hour)
	seedMessage(t, db, alice.ID, bob.ID, "one", false, base)
	seedMessage(t, db, alice.ID, bob.ID, "two", false, base.Add(time.Minute))
	outgoing := seedMessage(t, db, bob.ID, alice.ID, "reply", false, base.Add(2*time.Minute))

	updated, err := repo.MarkConversationRead(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	count, err := repo.GetUnreadCount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Bob's own outgoing message stays unread for Alice.
	got, err := repo.FindByID(outgoing.ID)
	require.NoError(t, err)
	assert.False(t, got.IsRead)

	aliceUnread, err := repo.GetUnreadCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), aliceUnread)

	// Re-marking is a no-op.
	updated, err = repo.MarkConversationRead(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}

func TestMessageRepository_FindAllForUser_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	alice := createTestUser(t, db, "alice@test.io")
	bob := createTestUser(t, db, "bob@test.io")

	base := time.Now().Add(-time.Hour)
	seedMessage(t, db, alice.ID, bob.ID, "first", false, base)
	newest := seedMessage(t, db, bob.ID, alice.ID, "second", false, base.Add(time.Minute))

	all, err := repo.FindAllForUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newest.ID, all[0].ID)
}

func TestMessageRepository_DeleteConversation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	alice := createTestUser(t, db, "alice@test.io")
	bob := createTestUser(t, db, "bob@test.io")
	carol := createTestUser(t, db, "carol@test.io")

	base := time.Now().Add(-time.Hour)
	seedMessage(t, db, alice.ID, bob.ID, "to bob", false, base)
	seedMessage(t, db, bob.ID, alice.ID, "from bob", false, base.Add(time.Minute))
	seedMessage(t, db, alice.ID, carol.ID, "to carol", false, base.Add(2*time.Minute))

	require.NoError(t, repo.DeleteConversation(alice.ID, bob.ID))

	all, err := repo.FindAllForUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, carol.ID, all[0].ReceiverID)
}
