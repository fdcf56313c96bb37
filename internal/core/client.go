package core

// Client is a single live connection as seen by the core layer.
// Two connections of the same user are distinct clients; ConnID tells
// them apart when the registry decides which one is current.
type Client struct {
	ConnID   string
	Identity UserIdentity
	Commands chan *Command
	Events   chan *Event
}

// NewClient constructs a client with initialized channels.
func NewClient(connID string, identity UserIdentity) *Client {
	return &Client{
		ConnID:   connID,
		Identity: identity,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 16),
	}
}

// send delivers an event without blocking. A consumer that stopped
// draining its channel loses events rather than stalling everyone else.
func (c *Client) send(event *Event) {
	select {
	case c.Events <- event:
	default:
	}
}
