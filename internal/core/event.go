package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventOnlineSnapshot delivers the full set of online user ids.
	EventOnlineSnapshot EventKind = iota
	// EventPresenceChanged notifies clients that a user came online or went offline.
	EventPresenceChanged
	// EventMessageDelivered carries a private message to its receiver.
	EventMessageDelivered
	// EventMessageAck confirms a persisted message to its sender.
	EventMessageAck
	// EventTypingChanged forwards a typing indicator to its target.
	EventTypingChanged
	// EventError notifies a client about a domain error.
	EventError
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind     EventKind
	UserIDs  []int64      // EventOnlineSnapshot
	User     UserIdentity // EventPresenceChanged, EventTypingChanged
	Online   bool         // EventPresenceChanged
	IsTyping bool         // EventTypingChanged
	Message  Message      // EventMessageDelivered, EventMessageAck
	Error    *CoreError   // EventError
}
