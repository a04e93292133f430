package core

import "encoding/json"

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinCall adds the client to a room and replays its chat history.
	CommandJoinCall CommandKind = iota
	// CommandSignal forwards an opaque payload to another connection.
	CommandSignal
	// CommandChatMessage broadcasts a chat message to the sender's room.
	CommandChatMessage

	commandRegister
	commandUnregister
	commandSnapshot
)

// Command represents an action requested by a client.
type Command struct {
	Kind   CommandKind
	Client *Client

	// Room is the room key for CommandJoinCall.
	Room string

	// Target and Payload describe a CommandSignal.
	Target  string
	Payload json.RawMessage

	// Text and Sender describe a CommandChatMessage.
	Text   string
	Sender string

	snapshot chan []RoomState
}
