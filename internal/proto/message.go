package proto

import "encoding/json"

// Event names carried in the envelope.
const (
	EventJoinCall    = "join-call"
	EventSignal      = "signal"
	EventChatMessage = "chat-message"

	EventConnected  = "connected"
	EventUserJoined = "user-joined"
	EventUserLeft   = "user-left"
)

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Event string            `json:"event"`
	Args  []json.RawMessage `json:"args"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Event string `json:"event"`
	Args  []any  `json:"args"`
}

// NewInbound builds an inbound frame, marshalling each argument. Used by clients.
func NewInbound(event string, args ...any) (Inbound, error) {
	raw := make([]json.RawMessage, 0, len(args))
	for _, a := range args {
		b, err := json.Marshal(a)
		if err != nil {
			return Inbound{}, err
		}
		raw = append(raw, b)
	}
	return Inbound{Event: event, Args: raw}, nil
}

// StringArg decodes argument i as a JSON string.
func (in Inbound) StringArg(i int) (string, bool) {
	if i >= len(in.Args) || len(in.Args[i]) == 0 || in.Args[i][0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(in.Args[i], &s); err != nil {
		return "", false
	}
	return s, true
}

// TextArg decodes argument i as text: strings are unquoted, other JSON values
// are returned verbatim and a missing argument is empty.
func (in Inbound) TextArg(i int) string {
	if i >= len(in.Args) {
		return ""
	}
	if s, ok := in.StringArg(i); ok {
		return s
	}
	if string(in.Args[i]) == "null" {
		return ""
	}
	return string(in.Args[i])
}

// RawArg returns argument i untouched, or JSON null when missing.
func (in Inbound) RawArg(i int) json.RawMessage {
	if i >= len(in.Args) || len(in.Args[i]) == 0 {
		return json.RawMessage("null")
	}
	return in.Args[i]
}
