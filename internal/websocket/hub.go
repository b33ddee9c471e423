// Package websocket fans dataset-refresh notifications out to connected
// dashboard clients. A single goroutine owns all hub state; every mutation
// arrives as a command on the hub channel, so no locks are needed.
package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pzsluna26/Dashboard/internal/metrics"
)

const writeTimeout = 5 * time.Second

// --- Command types ---

type hubCmd interface{ hubCmd() }

type cmdRegister struct {
	conn  *websocket.Conn
	errCh chan error
}

func (cmdRegister) hubCmd() {}

type cmdUnregister struct {
	conn *websocket.Conn
}

func (cmdUnregister) hubCmd() {}

type cmdBroadcast struct {
	data []byte
}

func (cmdBroadcast) hubCmd() {}

type cmdClientCount struct {
	replyCh chan int
}

func (cmdClientCount) hubCmd() {}

type cmdStop struct{}

func (cmdStop) hubCmd() {}

// --- Per-connection writer ---

type clientWriter struct {
	id     string
	conn   *websocket.Conn
	sendCh chan []byte
	done   chan struct{}
}

func newClientWriter(conn *websocket.Conn) *clientWriter {
	cw := &clientWriter{
		id:     uuid.NewString(),
		conn:   conn,
		sendCh: make(chan []byte, 16),
		done:   make(chan struct{}),
	}
	go cw.run()
	return cw
}

func (cw *clientWriter) run() {
	for {
		select {
		case msg, ok := <-cw.sendCh:
			if !ok {
				return
			}
			cw.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
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
	cw.conn.Close()
}

// --- Hub ---

// RefreshMessage tells clients the dataset changed and views should be
// re-fetched.
type RefreshMessage struct {
	Type     string    `json:"type"`
	Version  int       `json:"version"`
	LoadedAt time.Time `json:"loaded_at"`
}

type Hub struct {
	cmdCh      chan hubCmd
	clients    map[*websocket.Conn]*clientWriter
	maxClients int
}

// NewHub starts a hub allowing at most maxClients concurrent connections.
func NewHub(maxClients int) *Hub {
	hub := &Hub{
		cmdCh:      make(chan hubCmd, 256),
		clients:    make(map[*websocket.Conn]*clientWriter),
		maxClients: maxClients,
	}
	go hub.run()
	return hub
}

func (h *Hub) run() {
	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case cmdRegister:
			h.handleRegister(c)
		case cmdUnregister:
			h.handleUnregister(c.conn)
		case cmdBroadcast:
			h.handleBroadcast(c.data)
		case cmdClientCount:
			c.replyCh <- len(h.clients)
		case cmdStop:
			h.handleStop()
			return
		}
	}
}

func (h *Hub) handleRegister(c cmdRegister) {
	if len(h.clients) >= h.maxClients {
		slog.Warn("Rejecting dashboard client: connection limit reached", "limit", h.maxClients)
		metrics.WebSocketConnectionsTotal.WithLabelValues("rejected").Inc()
		c.conn.Close()
		c.errCh <- fmt.Errorf("connection limit (%d) reached", h.maxClients)
		return
	}

	cw := newClientWriter(c.conn)
	h.clients[c.conn] = cw
	metrics.WebSocketConnectionsTotal.WithLabelValues("success").Inc()
	metrics.WebSocketClientsCurrent.Set(float64(len(h.clients)))
	slog.Info("Dashboard client connected", "client_id", cw.id, "total_clients", len(h.clients))
	c.errCh <- nil
}

func (h *Hub) handleUnregister(conn *websocket.Conn) {
	cw, exists := h.clients[conn]
	if !exists {
		return
	}

	cw.stop()
	delete(h.clients, conn)
	metrics.WebSocketClientsCurrent.Set(float64(len(h.clients)))
	slog.Info("Dashboard client disconnected", "client_id", cw.id, "remaining_clients", len(h.clients))
}

func (h *Hub) handleBroadcast(data []byte) {
	var slow []*websocket.Conn
	for conn, cw := range h.clients {
		select {
		case cw.sendCh <- data:
		default:
			slow = append(slow, conn)
		}
	}

	for _, conn := range slow {
		slog.Warn("Disconnecting slow dashboard client", "client_id", h.clients[conn].id)
		metrics.WebSocketSlowClientsEvicted.Inc()
		h.handleUnregister(conn)
	}

	metrics.BroadcastsTotal.Inc()
}

func (h *Hub) handleStop() {
	for conn, cw := range h.clients {
		cw.stop()
		delete(h.clients, conn)
	}
	metrics.WebSocketClientsCurrent.Set(0)
}

// --- Public API ---

func (h *Hub) Register(conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	h.cmdCh <- cmdRegister{conn: conn, errCh: errCh}
	return <-errCh
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.cmdCh <- cmdUnregister{conn: conn}
}

// BroadcastRefresh notifies every client that a new dataset version is live.
func (h *Hub) BroadcastRefresh(version int, loadedAt time.Time) {
	data, err := json.Marshal(RefreshMessage{Type: "dataset_updated", Version: version, LoadedAt: loadedAt})
	if err != nil {
		slog.Error("Failed to marshal refresh message", "error", err)
		return
	}
	h.cmdCh <- cmdBroadcast{data: data}
}

func (h *Hub) ClientCount() int {
	replyCh := make(chan int, 1)
	h.cmdCh <- cmdClientCount{replyCh: replyCh}
	return <-replyCh
}

func (h *Hub) Stop() {
	h.cmdCh <- cmdStop{}
}
