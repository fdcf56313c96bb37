package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandSendMessage delivers a private message to another user.
	CommandSendMessage CommandKind = iota
	// CommandSetTyping forwards the sender's typing state to another user.
	CommandSetTyping
)

// Command represents an action requested by a connection.
type Command struct {
	Kind       CommandKind
	ReceiverID int64
	Text       string
	IsTyping   bool
}
