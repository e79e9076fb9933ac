package broadcast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
	"github.com/iwtcode/machineMonitor/internal/middleware/logging"
)

const (
	wsWriteTimeout = 5 * time.Second
	wsPingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := strings.ToLower(strings.TrimSpace(r.Host))
		originHost := strings.ToLower(strings.TrimSpace(u.Host))
		return host == originHost
	},
}

type subscriber struct {
	send chan []byte
}

// Hub раздает снимки парка подписчикам WebSocket.
// Медленный подписчик теряет снимки, но не блокирует опрос.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
	buffer      int
	last        []byte
	closed      chan struct{}
	closeOnce   sync.Once
	logger      *logging.Logger
}

func NewHub(buffer int, logger *logging.Logger) *Hub {
	if buffer <= 0 {
		buffer = 1
	}
	return &Hub{
		subscribers: make(map[*subscriber]struct{}),
		buffer:      buffer,
		closed:      make(chan struct{}),
		logger:      logger.WithPrefix("WS"),
	}
}

func (h *Hub) Name() string { return "websocket" }

func (h *Hub) Publish(_ context.Context, snapshot models.FleetSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = payload
	for sub := range h.subscribers {
		select {
		case sub.send <- payload:
		default:
			h.logger.Debug("Subscriber is lagging, snapshot dropped")
		}
	}
	return nil
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

func (h *Hub) subscribe() *subscriber {
	sub := &subscriber{send: make(chan []byte, h.buffer)}
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	if h.last != nil {
		sub.send <- h.last
	}
	h.mu.Unlock()
	return sub
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	delete(h.subscribers, sub)
	h.mu.Unlock()
}

// ServeWS переводит запрос в WebSocket и держит соединение, пока клиент его не закроет.
// Первым сообщением клиент получает последний известный снимок.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	sub := h.subscribe()
	defer h.unsubscribe(sub)
	h.logger.Info("Subscriber connected", "remote", r.RemoteAddr)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	for {
		select {
		case payload := <-sub.send:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			h.logger.Info("Subscriber disconnected", "remote", r.RemoteAddr)
			return
		case <-h.closed:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
				time.Now().Add(wsWriteTimeout))
			return
		}
	}
}

// Close отключает всех подписчиков
func (h *Hub) Close() error {
	h.closeOnce.Do(func() { close(h.closed) })
	return nil
}
