package core

import (
	"context"
	"sync"

	"github.com/orgchat/orgchat-server/internal/metrics"
	"github.com/orgchat/orgchat-server/internal/store"
)

// Hub owns the presence registry and coordinates connection lifecycle,
// message routing and typing relay. One hub serves the whole process.
//
// Each admitted client gets its own command worker, so a slow store
// append stalls only that connection while everyone else keeps going.
type Hub struct {
	presence *Presence
	router   *Router
	typing   *TypingRelay

	mu     sync.Mutex
	closed bool
}

// NewHub creates a hub persisting messages through the given store.
func NewHub(messages store.MessageStore) *Hub {
	presence := NewPresence()
	return &Hub{
		presence: presence,
		router:   NewRouter(presence, messages),
		typing:   NewTypingRelay(presence),
	}
}

// Run blocks until ctx is cancelled, then refuses new admissions.
// Existing connections are torn down by their transport handlers.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
}

// Presence exposes the registry for read-side collaborators.
func (h *Hub) Presence() *Presence {
	return h.presence
}

// Admit registers the connection, sends it the online snapshot, announces
// the user to everyone else and starts the command worker. Returns false
// when the hub is shutting down; the caller should drop the connection.
func (h *Hub) Admit(c *Client) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return false
	}
	h.mu.Unlock()

	h.presence.Register(c)
	metrics.ConnectionsActive.Inc()

	c.send(&Event{Kind: EventOnlineSnapshot, UserIDs: h.presence.Snapshot()})

	online := &Event{Kind: EventPresenceChanged, User: c.Identity, Online: true}
	snapshot := &Event{Kind: EventOnlineSnapshot, UserIDs: h.presence.Snapshot()}
	for _, other := range h.presence.clients() {
		if other == c {
			continue
		}
		other.send(online)
		other.send(snapshot)
	}

	go h.serve(c)
	return true
}

// Remove unregisters the connection. The offline broadcast happens only
// when this handle was still the registered one; if a newer connection
// already replaced it, the user is still online and nothing is announced.
func (h *Hub) Remove(c *Client) {
	metrics.ConnectionsActive.Dec()
	if !h.presence.Unregister(c) {
		return
	}

	offline := &Event{Kind: EventPresenceChanged, User: c.Identity, Online: false}
	snapshot := &Event{Kind: EventOnlineSnapshot, UserIDs: h.presence.Snapshot()}
	for _, other := range h.presence.clients() {
		other.send(offline)
		other.send(snapshot)
	}
}

// serve drains the client's commands until the channel is closed by the
// transport. A store append in flight runs on the background context, so
// it completes even when the connection goes away mid-send; the delivery
// and ack are then simply dropped.
func (h *Hub) serve(c *Client) {
	for cmd := range c.Commands {
		switch cmd.Kind {
		case CommandSendMessage:
			h.router.Send(context.Background(), c, cmd.ReceiverID, cmd.Text)
		case CommandSetTyping:
			h.typing.Relay(c, cmd.ReceiverID, cmd.IsTyping)
		}
	}
}
