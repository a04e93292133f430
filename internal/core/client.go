package core

// DefaultClientBuffer is the outbound queue size used when none is given.
const DefaultClientBuffer = 256

// Client is one transport session as seen by the core layer.
type Client struct {
	ID     string
	Events chan *Event
}

// NewClient constructs a client with an outbound event queue of the given size.
func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = DefaultClientBuffer
	}
	return &Client{
		ID:     id,
		Events: make(chan *Event, buffer),
	}
}
