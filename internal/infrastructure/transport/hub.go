package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/remotedeck/remotedeck/internal/application/dto"
	"github.com/remotedeck/remotedeck/internal/application/ports"
	"github.com/remotedeck/remotedeck/internal/application/services"
)

const (
	writeTimeout   = 5 * time.Second
	maxMessageSize = 64 * 1024
)

// PressHandler handles control-press payloads read from a client.
type PressHandler interface {
	HandleControlPress(ctx context.Context, payload []byte) error
}

var _ ports.EventPublisher = (*Hub)(nil)

// Hub tracks connected websocket clients. It reads control presses from
// every client and broadcasts sync events to all of them. Each press runs in
// its own goroutine so a slow action sequence does not hold up the next
// press from the same panel.
type Hub struct {
	upgrader websocket.Upgrader
	presses  PressHandler
	logger   *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client
	closed  bool

	inflight sync.WaitGroup
}

// NewHub creates a hub. presses may be set later with SetPressHandler.
func NewHub(presses PressHandler, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Remote panels are served from their own origin on the LAN.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		presses: presses,
		logger:  logger,
		clients: make(map[string]*client),
	}
}

// SetPressHandler sets the handler for incoming presses. It must be called
// before the hub serves connections.
func (h *Hub) SetPressHandler(presses PressHandler) {
	h.presses = presses
}

// client wraps one connection. Writes are serialized by mu; reads happen
// only in the receive loop.
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *client) close(code int, reason string) {
	c.mu.Lock()
	deadline := time.Now().Add(time.Second)
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	c.mu.Unlock()
	_ = c.conn.Close()
}

// ServeHTTP upgrades the request and runs the client's receive loop until
// the connection ends.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.logger.Debug("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	c := &client{id: uuid.NewString(), conn: conn}
	if !h.add(c) {
		c.close(websocket.CloseGoingAway, "server shutting down")
		return
	}
	h.logger.Info("client connected", "client_id", c.id, "remote", r.RemoteAddr)

	h.receiveLoop(context.WithoutCancel(r.Context()), c)

	h.remove(c.id)
	_ = conn.Close()
	h.logger.Info("client disconnected", "client_id", c.id)
}

func (h *Hub) receiveLoop(ctx context.Context, c *client) {
	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("websocket read failed", "client_id", c.id, "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage || h.presses == nil {
			continue
		}
		if !h.track() {
			return
		}
		go func() {
			defer h.inflight.Done()
			if err := h.presses.HandleControlPress(ctx, data); err != nil && !errors.Is(err, services.ErrPressIgnored) {
				h.logger.Warn("control press failed", "client_id", c.id, "error", err)
			}
		}()
	}
}

// track registers an in-flight press. It reports false once the hub is
// closed, so Drain never races with a new press.
func (h *Hub) track() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return false
	}
	h.inflight.Add(1)
	return true
}

// Publish implements ports.EventPublisher. Clients whose write fails are
// dropped.
func (h *Hub) Publish(event dto.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to encode event", "type", event.Type, "error", err)
		return
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.send(data); err != nil {
			h.logger.Debug("dropping client after write failure", "client_id", c.id, "error", err)
			h.remove(c.id)
			_ = c.conn.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Drain waits for presses that are still being dispatched. Call it after
// Close and before persisting state so late mutations are not lost.
func (h *Hub) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close disconnects every client and rejects new ones and new presses.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[string]*client)
	h.mu.Unlock()

	for _, c := range clients {
		c.close(websocket.CloseGoingAway, "server shutting down")
	}
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c.id] = c
	return true
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
}
