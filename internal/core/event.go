package core

import "encoding/json"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventConnected tells a client its own connection identifier.
	EventConnected EventKind = iota
	// EventUserJoined notifies room members that a connection joined.
	EventUserJoined
	// EventUserLeft notifies room members that a connection disconnected.
	EventUserLeft
	// EventChatMessage carries a live chat record.
	EventChatMessage
	// EventSignal carries a relayed signaling payload.
	EventSignal
	// EventHistory carries a room's full chat history for a new joiner.
	// It is one queue entry however long the history is.
	EventHistory
)

// Event is sent to clients to describe what happened in the system.
// Events are shared between recipients and must not be mutated.
type Event struct {
	Kind EventKind
	Room string

	// User is the subject connection: the joiner, the leaver, the signal
	// sender, or the recipient itself for EventConnected.
	User string

	// Members is the room membership after a join, in join order.
	Members []string

	Chat ChatRecord

	// History is the replayed chat log in arrival order.
	History []ChatRecord

	Payload json.RawMessage
}

// ChatRecord is a sanitized chat message stored for a room.
type ChatRecord struct {
	Sender string
	Body   string
	From   string
}
