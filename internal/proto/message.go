package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeSend   = "send_message"
	InboundTypeTyping = "set_typing"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventNameOnlineUsers = "online_users"
	EventNamePresence    = "presence"
	EventNameMessage     = "message"
	EventNameMessageSent = "message_sent"
	EventNameTyping      = "typing"
)

// SendData is a private message from the client.
type SendData struct {
	ReceiverID int64  `json:"receiver_id"`
	Text       string `json:"text"`
}

// TypingData announces the client's typing state toward another user.
type TypingData struct {
	ReceiverID int64 `json:"receiver_id"`
	IsTyping   bool  `json:"is_typing"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// EventOnlineUsers carries the full set of online user ids.
type EventOnlineUsers struct {
	UserIDs []int64 `json:"user_ids"`
}

// EventPresence notifies that a user came online or went offline.
type EventPresence struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Online   bool   `json:"online"`
}

// EventMessage is a delivered or acknowledged private message.
type EventMessage struct {
	ID         int64  `json:"id"`
	SenderID   int64  `json:"sender_id"`
	SenderName string `json:"sender_name"`
	ReceiverID int64  `json:"receiver_id"`
	Text       string `json:"text"`
	TS         int64  `json:"ts"`
}

// EventTyping is a relayed typing indicator.
type EventTyping struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	IsTyping bool   `json:"is_typing"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
