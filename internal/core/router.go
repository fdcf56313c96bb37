package core

import (
	"context"
	"strings"
	"time"

	"github.com/orgchat/orgchat-server/internal/metrics"
	"github.com/orgchat/orgchat-server/internal/store"
)

// Router validates, persists and forwards private messages.
type Router struct {
	presence *Presence
	messages store.MessageStore
}

// NewRouter constructs a router over the given registry and store.
func NewRouter(presence *Presence, messages store.MessageStore) *Router {
	return &Router{presence: presence, messages: messages}
}

// Send persists the message and forwards it. The receiver lookup happens
// after the append returns, so live delivery reflects presence at that
// later moment, not at the time the command was read. A receiver that
// disconnected during the append just misses live delivery; the message
// stays retrievable through history. Every successful send is acked back
// to the sender whether or not the receiver was online. A failed append
// is reported to the sender only and never retried here.
func (r *Router) Send(ctx context.Context, sender *Client, receiverID int64, body string) {
	body = strings.TrimSpace(body)
	if receiverID == 0 || body == "" {
		sender.send(&Event{Kind: EventError, Error: coreError(ErrCodeInvalidInput, "receiver and message body are required")})
		return
	}

	stored, err := r.messages.AppendMessage(ctx, sender.Identity.ID, receiverID, body, time.Now().UTC())
	if err != nil {
		sender.send(&Event{Kind: EventError, Error: coreError(ErrCodePersistenceFailed, "failed to send message")})
		return
	}

	msg := Message{
		ID:         stored.ID,
		SenderID:   sender.Identity.ID,
		SenderName: sender.Identity.Username,
		ReceiverID: receiverID,
		Body:       body,
		CreatedAt:  stored.CreatedAt,
	}
	metrics.MessagesSent.Inc()

	if receiver, ok := r.presence.Lookup(receiverID); ok {
		receiver.send(&Event{Kind: EventMessageDelivered, Message: msg})
		metrics.LiveDeliveries.Inc()
	}
	sender.send(&Event{Kind: EventMessageAck, Message: msg})
}
