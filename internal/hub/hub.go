// Package hub tracks the sessions connected to a shared server: who is online,
// how many visitors came by, how many gardens were completed. It also fans
// server events out to every session.
//
// Game state is never shared; each session owns its own collection.State.
package hub

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// SessionHub is the interface sessions use to talk to the hub.
// Decouples the session loop from the concrete Hub so local play and tests
// can run without a server.
type SessionHub interface {
	Register(username string) *Handle
	Unregister(id int)
	RecordCompletion(id int)
	Stats() Stats
}

// Compile-time check that Hub implements SessionHub.
var _ SessionHub = (*Hub)(nil)

// Handle is a session's connection to the hub.
type Handle struct {
	ID       int
	Username string
	Events   chan Event // Closed when the hub drops the session
}

// EventType identifies a hub event.
type EventType int

const (
	EventServerShutdown EventType = iota
	EventSecretFound               // Another session unlocked its secret
)

// Event is sent from the hub to a session.
type Event struct {
	Type     EventType
	Username string // For EventSecretFound
}

// Stats is an immutable view of the hub counters.
type Stats struct {
	Online    int `json:"online"`
	Visitors  int `json:"visitors"`
	Completed int `json:"completed"`
}

// Hub owns session bookkeeping. Registrations are processed by Run, so Run
// must be running for Register and Unregister to make progress. Once Run
// returns, calls into the hub no longer block.
type Hub struct {
	sessions     map[int]*Handle
	nextID       int
	visitors     int
	completed    int
	stats        atomic.Pointer[Stats]
	registerCh   chan *Handle
	unregisterCh chan int
	completeCh   chan int
	done         chan struct{} // Closed when Run returns
	mu           sync.RWMutex
	logger       *log.Logger
}

// New creates a hub. A nil logger discards log output.
func New(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &Hub{
		sessions:     make(map[int]*Handle),
		nextID:       1,
		registerCh:   make(chan *Handle, 16),
		unregisterCh: make(chan int, 16),
		completeCh:   make(chan int, 16),
		done:         make(chan struct{}),
		logger:       logger,
	}
	h.stats.Store(&Stats{})
	return h
}

// Run processes registrations until ctx is cancelled. Call it once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			return
		case handle := <-h.registerCh:
			h.addSession(handle)
		case id := <-h.unregisterCh:
			// A session's Register is queued before its Unregister, so
			// pending registrations go first.
			h.drainRegistrations()
			h.mu.Lock()
			if handle, ok := h.sessions[id]; ok {
				close(handle.Events)
				delete(h.sessions, id)
			}
			h.mu.Unlock()
			h.logger.Debug("session unregistered", "id", id)
		case id := <-h.completeCh:
			h.recordCompletion(id)
		}
		h.publish()
	}
}

func (h *Hub) addSession(handle *Handle) {
	h.mu.Lock()
	h.sessions[handle.ID] = handle
	h.visitors++
	h.mu.Unlock()
	h.logger.Debug("session registered", "id", handle.ID, "user", handle.Username)
}

func (h *Hub) drainRegistrations() {
	for {
		select {
		case handle := <-h.registerCh:
			h.addSession(handle)
		default:
			return
		}
	}
}

// recordCompletion counts a finished garden and tells everyone else.
func (h *Hub) recordCompletion(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.completed++
	finisher, ok := h.sessions[id]
	if !ok {
		return
	}
	h.logger.Info("secret unlocked", "user", finisher.Username, "completed", h.completed)
	for otherID, handle := range h.sessions {
		if otherID == id {
			continue
		}
		select {
		case handle.Events <- Event{Type: EventSecretFound, Username: finisher.Username}:
		default:
		}
	}
}

func (h *Hub) publish() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.stats.Store(&Stats{
		Online:    len(h.sessions),
		Visitors:  h.visitors,
		Completed: h.completed,
	})
}

// Register adds a session with the given username and returns its handle.
// After Run has stopped the handle comes back with Events already closed.
func (h *Hub) Register(username string) *Handle {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.mu.Unlock()

	handle := &Handle{
		ID:       id,
		Username: username,
		Events:   make(chan Event, 16),
	}
	select {
	case h.registerCh <- handle:
	case <-h.done:
		close(handle.Events)
	}
	return handle
}

// Unregister removes a session; its Events channel is closed.
func (h *Hub) Unregister(id int) {
	select {
	case h.unregisterCh <- id:
	case <-h.done:
	}
}

// RecordCompletion reports that session id unlocked its secret.
func (h *Hub) RecordCompletion(id int) {
	select {
	case h.completeCh <- id:
	case <-h.done:
	}
}

// Stats returns the latest published counters.
func (h *Hub) Stats() Stats {
	return *h.stats.Load()
}

// Shutdown notifies every session and waits for them to disconnect, up to
// timeout. The caller should cancel Run's context after Shutdown returns.
func (h *Hub) Shutdown(timeout time.Duration) {
	h.mu.RLock()
	for _, handle := range h.sessions {
		select {
		case handle.Events <- Event{Type: EventServerShutdown}:
		default:
		}
	}
	h.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			h.mu.RLock()
			remaining := len(h.sessions)
			h.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}
