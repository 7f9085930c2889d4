package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lingolink/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWSServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.InitAuth("test-secret")

	r := gin.New()
	r.GET("/ws", HandleWebSocket(hub))

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func TestWebSocket_PushesNotificationToOnlineUser(t *testing.T) {
	hub := NewHub()
	server := startWSServer(t, hub)

	userID := uuid.New()
	token, err := middleware.IssueToken(userID, time.Hour)
	require.NoError(t, err)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// registration is asynchronous with the upgrade response
	require.Eventually(t, func() bool {
		return hub.IsUserOnline(userID)
	}, 2*time.Second, 10*time.Millisecond)

	delivered := hub.SendNotification(userID, map[string]string{"title": "hello"})
	assert.True(t, delivered)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &msg))
	assert.Equal(t, "notification", msg.Type)
}

func TestWebSocket_RejectsInvalidToken(t *testing.T) {
	hub := NewHub()
	server := startWSServer(t, hub)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=garbage"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestHub_OfflineUserIsNotDelivered(t *testing.T) {
	hub := NewHub()

	userID := uuid.New()
	assert.False(t, hub.IsUserOnline(userID))
	assert.False(t, hub.SendNotification(userID, map[string]string{"title": "hello"}))
}
