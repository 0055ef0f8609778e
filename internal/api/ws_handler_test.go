package api

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeBuilder/internal/auth"
	"resumeBuilder/internal/notify"
)

func dialWs(t *testing.T, client *redis.Client, authService *auth.AuthService) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewWsHandler(client, authService, discardLogger(), nil)
	router := gin.New()
	router.GET("/v1/ws", h.HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestWebSocketRejectsBadToken(t *testing.T) {
	authService, err := auth.NewAuthService("test-secret", time.Hour)
	require.NoError(t, err)
	// 鉴权失败前不会访问 Redis。
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = client.Close() })

	conn := dialWs(t, client, authService)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "auth", "token": "bogus"}))
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err = conn.ReadMessage()

	var closeErr *websocket.CloseError
	require.True(t, errors.As(err, &closeErr), "expected close frame, got %v", err)
	assert.Equal(t, websocket.ClosePolicyViolation, closeErr.Code)
}

func TestWebSocketForwardsSessionNotifications(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	authService, err := auth.NewAuthService("test-secret", time.Hour)
	require.NoError(t, err)
	sessionID := uuid.NewString()
	token, err := authService.IssueToken(sessionID)
	require.NoError(t, err)

	conn := dialWs(t, client, authService)
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "auth", "token": token}))

	// 订阅建立前发布的消息会丢失，所以持续发布直到客户端收到。
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	publisher := notify.NewRedisPublisher(client)
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			_ = publisher.Publish(ctx, uuid.NewString(), notify.Notification{Kind: notify.KindFailure, Title: "other session"})
			_ = publisher.Publish(ctx, sessionID, notify.Notification{Kind: notify.KindExportCompleted, Title: "PDF Ready", ExportID: "e1"})
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var got notify.Notification
	require.NoError(t, conn.ReadJSON(&got))
	cancel()

	assert.Equal(t, notify.KindExportCompleted, got.Kind)
	assert.Equal(t, "PDF Ready", got.Title)
	assert.Equal(t, "e1", got.ExportID)
}
