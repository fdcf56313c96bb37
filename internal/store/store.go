package store

import (
	"context"
	"time"
)

// User represents a registered user.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Message represents a persisted private message between two users.
type Message struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	Body       string
	CreatedAt  time.Time
}

// UserStore handles user persistence.
type UserStore interface {
	// CreateUser creates a new user with hashed password.
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id int64) (*User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// ListUsers lists all users except the given one, ordered by username.
	ListUsers(ctx context.Context, excludingID int64) ([]*User, error)
}

// MessageStore handles message persistence.
type MessageStore interface {
	// AppendMessage persists a new message and returns it with the
	// store-assigned id.
	AppendMessage(ctx context.Context, senderID, receiverID int64, body string, createdAt time.Time) (*Message, error)

	// ListConversation retrieves all messages between two users in either
	// direction, ascending by creation time.
	ListConversation(ctx context.Context, userA, userB int64) ([]*Message, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	UserStore
	MessageStore

	// Close closes the underlying database connection.
	Close() error
}
