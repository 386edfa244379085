package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/jardin/internal/celestial"
	"github.com/tomz197/jardin/internal/collection"
	"github.com/tomz197/jardin/internal/hub"
)

const (
	readLimit    = 4096
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
)

// Handler serves one game per websocket connection.
type Handler struct {
	registry *celestial.Registry
	hub      hub.SessionHub
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// HandlerConfig configures the handler. Every field is optional.
type HandlerConfig struct {
	Registry *celestial.Registry // Defaults to the embedded catalog
	Hub      hub.SessionHub      // Nil skips visitor counting
	Logger   *log.Logger
}

// NewHandler constructs a websocket handler.
func NewHandler(cfg HandlerConfig) *Handler {
	registry := cfg.Registry
	if registry == nil {
		registry = celestial.Default()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handler{
		registry: registry,
		hub:      cfg.Hub,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// conn serialises writes; gorilla allows one concurrent writer.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) send(msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", msg.Type, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// ServeHTTP upgrades the request and runs the game until the socket closes.
// The optional "name" query parameter labels the visitor in hub notices.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "err", err)
		return
	}
	c := &conn{ws: ws}
	defer ws.Close()

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "web"
	}
	logger := h.logger.With("user", name, "remote", r.RemoteAddr)

	state := collection.New(h.registry)
	if h.hub != nil {
		handle := h.hub.Register(name)
		defer h.hub.Unregister(handle.ID)
		state.Subscribe(collection.ObserverFunc(func(prev, next collection.Snapshot) {
			if collection.JustUnlocked(prev, next) {
				h.hub.RecordCompletion(handle.ID)
			}
		}))
		go h.forwardHubEvents(c, handle)
	}

	ws.SetReadLimit(readLimit)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go keepAlive(ws, done)

	if err := c.send(catalogMessage(h.registry)); err != nil {
		logger.Warn("send catalog", "err", err)
		return
	}
	if err := c.send(snapshotMessage(h.registry, state.Snapshot())); err != nil {
		logger.Warn("send snapshot", "err", err)
		return
	}
	logger.Info("browser session started")

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("read", "err", err)
			}
			break
		}
		if err := c.send(h.handleMessage(state, data, logger)); err != nil {
			logger.Warn("write", "err", err)
			break
		}
	}
	logger.Info("browser session ended", "score", state.Score())
}

// handleMessage applies one client message and builds the reply.
func (h *Handler) handleMessage(state *collection.State, data []byte, logger *log.Logger) ServerMessage {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		logger.Debug("bad message", "err", err)
		return errorMessage(ErrCodeBadMessage, state.Snapshot())
	}
	ev, err := msg.Event()
	if err != nil {
		if errors.Is(err, collection.ErrInvalidTarget) {
			return errorMessage(ErrCodeInvalidTarget, state.Snapshot())
		}
		logger.Debug("bad message", "type", msg.Type, "err", err)
		return errorMessage(ErrCodeBadMessage, state.Snapshot())
	}
	snap, err := state.Apply(ev)
	if err != nil {
		logger.Debug("rejected event", "kind", ev.Kind, "body", ev.BodyID, "err", err)
		return errorMessage(ErrCodeInvalidTarget, snap)
	}
	return snapshotMessage(h.registry, snap)
}

// forwardHubEvents relays hub broadcasts until the hub drops the session.
// A shutdown closes the socket so the read loop ends.
func (h *Handler) forwardHubEvents(c *conn, handle *hub.Handle) {
	for event := range handle.Events {
		switch event.Type {
		case hub.EventSecretFound:
			_ = c.send(ServerMessage{
				Type:   TypeNotice,
				Notice: fmt.Sprintf("%s encontró su mensaje secreto", event.Username),
			})
		case hub.EventServerShutdown:
			_ = c.send(ServerMessage{Type: TypeShutdown})
			c.mu.Lock()
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			c.mu.Unlock()
			_ = c.ws.Close()
			return
		}
	}
}

func keepAlive(ws *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
