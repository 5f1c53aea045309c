package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"math_edu_backend/internal/testutil"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T, rdb *redis.Client) (*EventHub, string) {
	t.Helper()
	hub := NewEventHub(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWs(w, r, "admin-1")
	}))
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) LiveEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev LiveEvent
	require.NoError(t, json.Unmarshal(data, &ev))
	return ev
}

func TestEventHub_LocalBroadcast(t *testing.T) {
	hub, url := startHub(t, nil)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(context.Background(), EventLessonCompleted, map[string]string{"lessonId": "l1"})

	ev := readEvent(t, conn)
	assert.Equal(t, EventLessonCompleted, ev.Type)
	assert.Equal(t, "l1", ev.Data.(map[string]interface{})["lessonId"])
}

func TestEventHub_RedisFanOut(t *testing.T) {
	rdb, _ := testutil.NewRedis(t)
	hubA, urlA := startHub(t, rdb)
	hubB, urlB := startHub(t, rdb)
	connA := dial(t, urlA)
	connB := dial(t, urlB)
	require.Eventually(t, func() bool {
		return hubA.ClientCount() == 1 && hubB.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	// wait until both instances are subscribed
	require.Eventually(t, func() bool {
		n, err := rdb.PubSubNumSub(context.Background(), LiveEventChannel).Result()
		return err == nil && n[LiveEventChannel] == 2
	}, 2*time.Second, 10*time.Millisecond)

	hubA.Publish(context.Background(), EventSubmissionGraded, map[string]int{"score": 90})

	assert.Equal(t, EventSubmissionGraded, readEvent(t, connA).Type)
	assert.Equal(t, EventSubmissionGraded, readEvent(t, connB).Type)
}

func TestEventHub_DisconnectUnregisters(t *testing.T) {
	hub, url := startHub(t, nil)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestEventHub_StopClosesConnections(t *testing.T) {
	hub, url := startHub(t, nil)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Stop()
	assert.Equal(t, 0, hub.ClientCount())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	// publishing after stop must not block
	hub.Publish(context.Background(), EventAttendanceMarked, nil)
}
