package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"vfxhub_backend/database"
	"vfxhub_backend/internal/config"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "integration-test-secret"
	cfg.JWT.TTLMinutes = 60
	cfg.RateLimit.RequestsPerSecond = 1000
	cfg.RateLimit.Burst = 1000

	return SetupRouter(cfg, db)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func registerUser(t *testing.T, router *gin.Engine, email, name, role string) (userID, token string) {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":        email,
		"password":     "swordfish-99",
		"role":         role,
		"display_name": name,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decode(t, rec, &resp)
	return resp.User.ID, resp.AccessToken
}

func TestAPI_MessageToNotificationFlow(t *testing.T) {
	router := setupTestRouter(t)

	aliceID, aliceToken := registerUser(t, router, "alice@test.io", "Alice", "artist")
	bobID, bobToken := registerUser(t, router, "bob@test.io", "Bob", "artist")

	// Alice sends Bob a message.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/messages", aliceToken, map[string]string{
		"receiver_id": bobID,
		"content":     "hello bob",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Bob's inbox holds exactly one unread message notification.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/notifications", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var inbox struct {
		Notifications []struct {
			ID     string `json:"id"`
			Type   string `json:"type"`
			IsRead bool   `json:"is_read"`
		} `json:"notifications"`
		UnreadCount int64 `json:"unread_count"`
	}
	decode(t, rec, &inbox)
	require.Len(t, inbox.Notifications, 1)
	assert.Equal(t, "message", inbox.Notifications[0].Type)
	assert.False(t, inbox.Notifications[0].IsRead)
	assert.Equal(t, int64(1), inbox.UnreadCount)

	// Bob's conversation list folds to one thread with one unread.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/messages/conversations", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var convList struct {
		Conversations []struct {
			CounterpartID string `json:"counterpart_id"`
			LastMessage   string `json:"last_message"`
			UnreadCount   int64  `json:"unread_count"`
		} `json:"conversations"`
		TotalUnread int64 `json:"total_unread"`
	}
	decode(t, rec, &convList)
	require.Len(t, convList.Conversations, 1)
	assert.Equal(t, aliceID, convList.Conversations[0].CounterpartID)
	assert.Equal(t, "hello bob", convList.Conversations[0].LastMessage)
	assert.Equal(t, int64(1), convList.TotalUnread)

	// Opening the thread marks it read.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/messages/conversations/"+aliceID, bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/messages/unread-count", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var unread struct {
		UnreadCount int64 `json:"unread_count"`
	}
	decode(t, rec, &unread)
	assert.Equal(t, int64(0), unread.UnreadCount)

	// Marking the notification read clears the badge.
	rec = doJSON(t, router, http.MethodPut, "/api/v1/notifications/"+inbox.Notifications[0].ID+"/read", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/notifications/unread-count", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &unread)
	assert.Equal(t, int64(0), unread.UnreadCount)
}

func TestAPI_NotificationOwnershipHidden(t *testing.T) {
	router := setupTestRouter(t)

	_, aliceToken := registerUser(t, router, "alice@test.io", "Alice", "artist")
	bobID, bobToken := registerUser(t, router, "bob@test.io", "Bob", "artist")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/messages", aliceToken, map[string]string{
		"receiver_id": bobID,
		"content":     "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/notifications", bobToken, nil)
	var inbox struct {
		Notifications []struct {
			ID string `json:"id"`
		} `json:"notifications"`
	}
	decode(t, rec, &inbox)
	require.Len(t, inbox.Notifications, 1)

	// Alice cannot see or touch Bob's notification.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/notifications/"+inbox.Notifications[0].ID, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/v1/notifications/"+inbox.Notifications[0].ID+"/read", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/notifications/"+inbox.Notifications[0].ID, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_RequiresAuth(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/notifications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/messages/conversations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/notifications", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_WhitespaceMessageRejected(t *testing.T) {
	router := setupTestRouter(t)

	_, aliceToken := registerUser(t, router, "alice@test.io", "Alice", "artist")
	bobID, bobToken := registerUser(t, router, "bob@test.io", "Bob", "artist")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/messages", aliceToken, map[string]string{
		"receiver_id": bobID,
		"content":     "   ",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/messages/conversations", bobToken, nil)
	var convList struct {
		Conversations []json.RawMessage `json:"conversations"`
	}
	decode(t, rec, &convList)
	assert.Empty(t, convList.Conversations)
}

func TestAPI_JobRoutesRequireStudioRole(t *testing.T) {
	router := setupTestRouter(t)

	_, artistToken := registerUser(t, router, "artist@test.io", "Alice", "artist")
	_, studioToken := registerUser(t, router, "studio@test.io", "Pixel Forge", "studio")

	jobBody := map[string]interface{}{
		"title":       "Senior Compositor",
		"description": "Nuke, heavy comp work on feature film.",
	}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/jobs", artistToken, jobBody)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/jobs", studioToken, jobBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Anyone can browse.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/jobs", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
