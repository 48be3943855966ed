package events

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/MrKumaPants/PokeNET-sub005/internal/logging"
)

// Hub fans battle events out to websocket subscribers. One hub exists per
// live battle. Slow clients are skipped rather than blocking the engine.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]bool
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[chan Event]bool)}
}

// Subscribe creates a buffered channel for a new client.
func (h *Hub) Subscribe() chan Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan Event, 64)
	h.subscribers[ch] = true
	return ch
}

// Unsubscribe removes a client and closes its channel.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
}

// Publish implements Sink. Full channels drop the event for that client.
func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subscribers {
		select {
		case ch <- e:
		default:
			// skip slow clients
		}
	}
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		close(ch)
		delete(h.subscribers, ch)
	}
}

// ServeConn pumps events from a subscription into a websocket connection
// until the client goes away or the hub closes the channel.
func (h *Hub) ServeConn(conn *websocket.Conn) {
	ch := h.Subscribe()
	defer func() {
		h.Unsubscribe(ch)
		conn.Close()
	}()

	// Reader goroutine: we never expect client frames, but reading is
	// required to notice closes.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(e); err != nil {
				logging.Error("event stream write failed", err, nil)
				return
			}
		case <-done:
			return
		}
	}
}
