package core

import (
	"slices"
	"sync"
)

// Presence is the in-memory registry of live connections, one entry per
// user. A repeated Register for the same user replaces the stored handle
// (last connection wins); the older handle is simply forgotten.
//
// All operations are short and never perform I/O; a single mutex guards
// the table.
type Presence struct {
	mu     sync.Mutex
	online map[int64]*Client
}

// NewPresence constructs an empty registry.
func NewPresence() *Presence {
	return &Presence{online: make(map[int64]*Client)}
}

// Register installs or replaces the entry for the client's user.
func (p *Presence) Register(c *Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.online[c.Identity.ID] = c
}

// Unregister removes the entry only if it still points at the given
// client. This keeps a stale disconnect from evicting a newer connection
// of the same user. Reports whether removal occurred.
func (p *Presence) Unregister(c *Client) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	cur, ok := p.online[c.Identity.ID]
	if !ok || cur != c {
		return false
	}
	delete(p.online, c.Identity.ID)
	return true
}

// Lookup returns the live connection for the user, if any.
func (p *Presence) Lookup(userID int64) (*Client, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.online[userID]
	return c, ok
}

// Snapshot returns the ids of all currently online users, sorted for
// stable wire output.
func (p *Presence) Snapshot() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]int64, 0, len(p.online))
	for id := range p.online {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// clients returns the current connection handles, for broadcast fan-out.
func (p *Presence) clients() []*Client {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Client, 0, len(p.online))
	for _, c := range p.online {
		out = append(out, c)
	}
	return out
}
