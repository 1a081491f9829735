package push

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	sendBuffer   = 32
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10
	maxReadBytes = 512
)

type message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// Hub keeps websocket subscribers grouped by channel. It is created once at
// startup and closed on shutdown.
type Hub struct {
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	closed  bool
	clients map[string]map[*client]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		log: logger.With("component", "push"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[string]map[*client]struct{}),
	}
}

// Publish never blocks. Clients whose buffer is full miss the message.
func (h *Hub) Publish(channel, event string, payload any) {
	data, err := json.Marshal(message{Event: event, Data: payload})
	if err != nil {
		h.log.Error("push_marshal_failed", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	for c := range h.clients[channel] {
		select {
		case c.send <- data:
		default:
			h.log.Warn("push_dropped", "channel", channel, "event", event, "remote", c.conn.RemoteAddr().String())
		}
	}
}

func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[channel])
}

func (h *Hub) Handler(channel string) echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			h.log.Warn("push_upgrade_failed", "error", err)
			return nil
		}

		cl := &client{conn: conn, send: make(chan []byte, sendBuffer)}
		welcome, _ := json.Marshal(message{Event: "welcome", Data: "you"})
		cl.send <- welcome

		if !h.register(channel, cl) {
			conn.Close()
			return nil
		}
		go h.writePump(cl)
		h.readPump(cl)
		h.unregister(channel, cl)
		return nil
	}
}

// Close disconnects every client. Later Publish calls do nothing.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, set := range h.clients {
		for c := range set {
			c.close()
		}
	}
	h.clients = map[string]map[*client]struct{}{}
}

func (h *Hub) register(channel string, c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	set, ok := h.clients[channel]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[channel] = set
	}
	set[c] = struct{}{}
	return true
}

func (h *Hub) unregister(channel string, c *client) {
	h.mu.Lock()
	if set, ok := h.clients[channel]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, channel)
		}
	}
	h.mu.Unlock()
	c.close()
}

func (h *Hub) readPump(c *client) {
	c.conn.SetReadLimit(maxReadBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
