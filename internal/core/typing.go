package core

import "github.com/orgchat/orgchat-server/internal/metrics"

// TypingRelay forwards ephemeral typing state between two users.
// Signals to offline users are dropped; nothing is queued, persisted
// or acknowledged.
type TypingRelay struct {
	presence *Presence
}

// NewTypingRelay constructs a relay over the given registry.
func NewTypingRelay(presence *Presence) *TypingRelay {
	return &TypingRelay{presence: presence}
}

// Relay forwards the sender's typing state to the target, if online.
// Malformed signals are ignored.
func (t *TypingRelay) Relay(sender *Client, receiverID int64, isTyping bool) {
	if receiverID == 0 {
		return
	}
	target, ok := t.presence.Lookup(receiverID)
	if !ok {
		return
	}
	target.send(&Event{Kind: EventTypingChanged, User: sender.Identity, IsTyping: isTyping})
	metrics.TypingSignals.Inc()
}
