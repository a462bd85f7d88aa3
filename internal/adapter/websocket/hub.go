package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pscheid92/sortlist/internal/adapter/metrics"
	"github.com/pscheid92/sortlist/internal/domain"
)

const (
	maxClients     = 256
	sendBufferSize = 16
	writeWait      = 5 * time.Second
	readLimit      = 512
)

var ErrHubStopped = errors.New("hub stopped")

// --- Command types ---

type hubCmd interface{ hubCmd() }

type cmdRegister struct {
	id    uuid.UUID
	conn  *websocket.Conn
	errCh chan error
}

func (cmdRegister) hubCmd() {}

type cmdUnregister struct {
	id uuid.UUID
}

func (cmdUnregister) hubCmd() {}

type cmdBroadcast struct {
	data []byte
}

func (cmdBroadcast) hubCmd() {}

type cmdGetClientCount struct {
	replyCh chan int
}

func (cmdGetClientCount) hubCmd() {}

type cmdStop struct{}

func (cmdStop) hubCmd() {}

// --- Per-connection writer ---

type clientWriter struct {
	conn   *websocket.Conn
	sendCh chan []byte
	done   chan struct{}
}

func newClientWriter(conn *websocket.Conn) *clientWriter {
	cw := &clientWriter{
		conn:   conn,
		sendCh: make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}
	go cw.run()
	return cw
}

func (cw *clientWriter) run() {
	for {
		select {
		case msg := <-cw.sendCh:
			_ = cw.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cw.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-cw.done:
			return
		}
	}
}

func (cw *clientWriter) stop() {
	close(cw.done)
	_ = cw.conn.Close()
}

// --- Hub ---

type welcome struct {
	Kind     string `json:"kind"`
	ClientID string `json:"client_id"`
}

// Hub pushes change events to every connected WebSocket client. All client state
// is owned by a single goroutine; slow clients are disconnected rather than
// blocking a broadcast.
type Hub struct {
	cmdCh    chan hubCmd
	stopped  chan struct{}
	clients  map[uuid.UUID]*clientWriter
	upgrader websocket.Upgrader
	metrics  *metrics.WebSocketMetrics
}

var _ domain.EventPublisher = (*Hub)(nil)

// NewHub starts the hub loop. checkOrigin guards the upgrade; m may be nil.
func NewHub(checkOrigin func(r *http.Request) bool, m *metrics.WebSocketMetrics) *Hub {
	h := &Hub{
		cmdCh:    make(chan hubCmd, 256),
		stopped:  make(chan struct{}),
		clients:  make(map[uuid.UUID]*clientWriter),
		upgrader: websocket.Upgrader{CheckOrigin: checkOrigin},
		metrics:  m,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case cmdRegister:
			h.handleRegister(c)
		case cmdUnregister:
			h.handleUnregister(c.id)
		case cmdBroadcast:
			h.handleBroadcast(c)
		case cmdGetClientCount:
			c.replyCh <- len(h.clients)
		case cmdStop:
			h.handleStop()
			close(h.stopped)
			return
		}
	}
}

func (h *Hub) handleRegister(c cmdRegister) {
	if len(h.clients) >= maxClients {
		slog.Warn("Rejecting change feed client: max clients reached", "client_id", c.id, "max", maxClients)
		_ = c.conn.Close()
		c.errCh <- fmt.Errorf("max clients (%d) reached", maxClients)
		return
	}

	cw := newClientWriter(c.conn)
	h.clients[c.id] = cw
	if hello, err := json.Marshal(welcome{Kind: "hello", ClientID: c.id.String()}); err == nil {
		cw.sendCh <- hello
	}
	if h.metrics != nil {
		h.metrics.ActiveConnections.Inc()
	}
	slog.Debug("Change feed client registered", "client_id", c.id, "clients", len(h.clients))
	c.errCh <- nil
}

func (h *Hub) handleUnregister(id uuid.UUID) {
	cw, exists := h.clients[id]
	if !exists {
		return
	}

	cw.stop()
	delete(h.clients, id)
	if h.metrics != nil {
		h.metrics.ActiveConnections.Dec()
	}
	slog.Debug("Change feed client unregistered", "client_id", id, "clients", len(h.clients))
}

func (h *Hub) handleBroadcast(c cmdBroadcast) {
	var slow []uuid.UUID
	for id, cw := range h.clients {
		select {
		case cw.sendCh <- c.data:
			if h.metrics != nil {
				h.metrics.MessagesPublished.Inc()
			}
		default:
			slow = append(slow, id)
		}
	}

	for _, id := range slow {
		slog.Warn("Disconnecting slow change feed client", "client_id", id)
		if h.metrics != nil {
			h.metrics.MessagesDropped.Inc()
		}
		h.handleUnregister(id)
	}
}

func (h *Hub) handleStop() {
	for id := range h.clients {
		h.handleUnregister(id)
	}
}

func (h *Hub) send(cmd hubCmd) bool {
	select {
	case <-h.stopped:
		return false
	default:
	}
	select {
	case h.cmdCh <- cmd:
		return true
	case <-h.stopped:
		return false
	}
}

// --- Public API ---

// ServeHTTP upgrades the request and keeps the connection registered until the
// client goes away. Client messages are read and discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(r.Context(), "WebSocket upgrade failed", "error", err)
		return
	}

	id := uuid.New()
	if err := h.Register(id, conn); err != nil {
		return
	}
	defer h.Unregister(id)

	conn.SetReadLimit(readLimit)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) Register(id uuid.UUID, conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	if !h.send(cmdRegister{id: id, conn: conn, errCh: errCh}) {
		_ = conn.Close()
		return ErrHubStopped
	}
	select {
	case err := <-errCh:
		return err
	case <-h.stopped:
		_ = conn.Close()
		return ErrHubStopped
	}
}

func (h *Hub) Unregister(id uuid.UUID) {
	h.send(cmdUnregister{id: id})
}

// PublishChange queues event for every connected client. It returns ErrHubStopped
// once Stop has returned.
func (h *Hub) PublishChange(ctx context.Context, event domain.ChangeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	select {
	case <-h.stopped:
		return ErrHubStopped
	default:
	}
	select {
	case h.cmdCh <- cmdBroadcast{data: data}:
		return nil
	case <-h.stopped:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) ClientCount() int {
	replyCh := make(chan int, 1)
	if !h.send(cmdGetClientCount{replyCh: replyCh}) {
		return 0
	}
	select {
	case n := <-replyCh:
		return n
	case <-h.stopped:
		return 0
	}
}

// Stop disconnects all clients and ends the hub loop. Later calls are no-ops.
func (h *Hub) Stop() {
	h.send(cmdStop{})
	<-h.stopped
}
