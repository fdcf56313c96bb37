package core

import "time"

// Message is the domain model for a persisted private message.
// The id is assigned by the store; the core never invents one.
type Message struct {
	ID         int64
	SenderID   int64
	SenderName string
	ReceiverID int64
	Body       string
	CreatedAt  time.Time
}
