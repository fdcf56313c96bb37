package core

// UserIdentity describes a verified user as resolved at connection time.
// The core holds a copy only; identities are created and owned by the
// auth layer and never change for the lifetime of a connection.
type UserIdentity struct {
	ID       int64
	Username string
}
