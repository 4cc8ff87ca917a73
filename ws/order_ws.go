package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"foodhub/pkg/events"
	"foodhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = 5 * time.Second

// OrderHub ส่งสถานะ order แบบ realtime ให้เจ้าของ order ทุก connection ที่เปิดอยู่
type OrderHub struct {
	clients    map[uint]map[*websocket.Conn]bool // userID -> set of connections
	broadcast  chan events.OrderEvent
	register   chan Subscription
	unregister chan Subscription
	done       chan struct{} // ปิดเมื่อ Run จบ
	mu         sync.Mutex
	log        *logrus.Entry
}

// Subscription = 1 connection ของ user
type Subscription struct {
	Conn   *websocket.Conn
	UserID uint
}

func NewOrderHub(log *logrus.Logger) *OrderHub {
	return &OrderHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan events.OrderEvent, 64),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		done:       make(chan struct{}),
		log:        log.WithField("component", "order_ws"),
	}
}

// คอยฟัง register/unregister/broadcast จนกว่า ctx จะถูกยกเลิก
func (h *OrderHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for _, conns := range h.clients {
				for conn := range conns {
					conn.Close()
				}
			}
			h.clients = make(map[uint]map[*websocket.Conn]bool)
			h.mu.Unlock()
			return

		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.UserID] == nil {
				h.clients[sub.UserID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.UserID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.UserID][sub.Conn]; ok {
				delete(h.clients[sub.UserID], sub.Conn)
				if len(h.clients[sub.UserID]) == 0 {
					delete(h.clients, sub.UserID)
				}
				sub.Conn.Close()
			}
			h.mu.Unlock()

		// ส่งให้ทุก connection ของเจ้าของ order
		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[ev.UserID] {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					h.log.WithError(err).WithField("user_id", ev.UserID).Warn("ws write error")
					conn.Close()
					delete(h.clients[ev.UserID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// PublishOrder implements events.Publisher. Events are dropped when the buffer is full.
func (h *OrderHub) PublishOrder(ctx context.Context, ev events.OrderEvent) error {
	select {
	case h.broadcast <- ev:
	case <-ctx.Done():
		return ctx.Err()
	default:
		h.log.WithField("order_id", ev.OrderID).Warn("ws buffer full, event dropped")
	}
	return nil
}

// Connections คืนจำนวน connection ที่เปิดอยู่ของ user
func (h *OrderHub) Connections(userID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/orders (ผ่าน WSAuthMiddleware แล้ว)
func (h *OrderHub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	// --- Upgrade HTTP → WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("ws upgrade error")
		return
	}

	sub := Subscription{Conn: conn, UserID: userID}
	select {
	case h.register <- sub:
	case <-h.done:
		conn.Close()
		return
	}

	go h.listen(sub)
}

// listen อ่านทิ้งอย่างเดียว เพื่อรู้ว่า client ปิด connection
func (h *OrderHub) listen(sub Subscription) {
	defer func() {
		select {
		case h.unregister <- sub:
		case <-h.done:
			sub.Conn.Close()
		}
	}()
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
