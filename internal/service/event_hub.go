package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"math_edu_backend/pkg/logger"
	"math_edu_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 64

	// LiveEventChannel 多实例部署时通过 redis 转发管理端事件
	LiveEventChannel = "math_edu:live_events"
)

// 管理端实时事件类型
const (
	EventLessonCompleted   = "LESSON_COMPLETED"
	EventSubmissionCreated = "SUBMISSION_CREATED"
	EventSubmissionGraded  = "SUBMISSION_GRADED"
	EventAttendanceMarked  = "ATTENDANCE_MARKED"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveEvent 推送给管理端的消息
type LiveEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
	At   time.Time   `json:"at"`
}

// EventPublisher 业务服务只依赖这个接口，测试时可替换
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data interface{})
}

type liveClient struct {
	hub    *EventHub
	conn   *websocket.Conn
	send   chan []byte
	userID string
}

// readPump 只处理 pong 和关闭，管理端不会上行消息
func (c *liveClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Warn("Live feed unexpected close", zap.Error(err), zap.String("userId", c.userID))
			}
			return
		}
	}
}

func (c *liveClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// EventHub 管理端实时动态：学生完成课程、提交作业、评分、点名
type EventHub struct {
	mu         sync.RWMutex
	clients    map[*liveClient]bool
	register   chan *liveClient
	unregister chan *liveClient
	broadcast  chan []byte
	done       chan struct{}
	stopOnce   sync.Once
	localOnly  bool
	Redis      *redis.Client
}

// NewEventHub rdb 为 nil 时仅在本实例内广播
func NewEventHub(rdb *redis.Client) *EventHub {
	return &EventHub{
		clients:    make(map[*liveClient]bool),
		register:   make(chan *liveClient),
		unregister: make(chan *liveClient),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
		Redis:      rdb,
	}
}

// Run 阻塞运行，直到 ctx 取消或 Stop 被调用
func (h *EventHub) Run(ctx context.Context) {
	if h.Redis != nil {
		pubsub := h.Redis.Subscribe(ctx, LiveEventChannel)
		// 等待订阅确认，保证 Run 返回前的 Publish 不会丢
		if _, err := pubsub.Receive(ctx); err != nil {
			logger.Log.Error("Live feed subscribe failed, falling back to local broadcast", zap.Error(err))
			pubsub.Close()
			h.mu.Lock()
			h.localOnly = true
			h.mu.Unlock()
		} else {
			defer pubsub.Close()
			go func() {
				for msg := range pubsub.Channel() {
					h.deliver([]byte(msg.Payload))
				}
			}()
		}
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			monitoring.LiveConnections.Inc()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				monitoring.LiveConnections.Dec()
			}
			h.mu.Unlock()

		case payload := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// 慢客户端直接丢消息，不阻塞其他连接
				}
			}
			h.mu.RUnlock()

		case <-ctx.Done():
			h.Stop()
			return
		case <-h.done:
			return
		}
	}
}

func (h *EventHub) deliver(payload []byte) {
	select {
	case h.broadcast <- payload:
	case <-h.done:
	}
}

// Publish 序列化事件；有 redis 时经由频道分发到所有实例，否则本地广播
func (h *EventHub) Publish(ctx context.Context, eventType string, data interface{}) {
	payload, err := json.Marshal(LiveEvent{Type: eventType, Data: data, At: time.Now()})
	if err != nil {
		logger.Log.Error("Live event marshal failed", zap.Error(err), zap.String("type", eventType))
		return
	}
	monitoring.LiveEvents.WithLabelValues(eventType).Inc()

	h.mu.RLock()
	useRedis := h.Redis != nil && !h.localOnly
	h.mu.RUnlock()
	if useRedis {
		err := h.Redis.Publish(ctx, LiveEventChannel, payload).Err()
		if err == nil {
			return
		}
		logger.Log.Warn("Live event publish failed, broadcasting locally", zap.Error(err))
	}
	select {
	case h.broadcast <- payload:
	case <-h.done:
	default:
		logger.Log.Warn("Live event dropped, broadcast buffer full", zap.String("type", eventType))
	}
}

// ClientCount 本实例上的连接数
func (h *EventHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stop 关闭所有连接
func (h *EventHub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.mu.Lock()
		closed := len(h.clients)
		for client := range h.clients {
			close(client.send)
			delete(h.clients, client)
		}
		h.mu.Unlock()
		monitoring.LiveConnections.Set(0)
		logger.Log.Info("Live feed stopped", zap.Int("closedConnections", closed))
	})
}

// ServeWs 升级连接并注册到 hub
func (h *EventHub) ServeWs(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("WebSocket upgrade failed", zap.Error(err), zap.String("userId", userID))
		return
	}
	client := &liveClient{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		userID: userID,
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
