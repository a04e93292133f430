package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirecall-server/internal/metrics"
	"github.com/vovakirdan/wirecall-server/internal/sanitize"
)

// Hub is the relay engine. A single goroutine running Run owns the presence
// registry, the room directory and the chat history, so every command is
// applied atomically and notifications for a room keep the order in which
// commands were applied.
type Hub struct {
	inbound chan *Command
	done    chan struct{}

	clients  map[string]*Client
	presence *Presence
	rooms    *Directory
	history  *History

	clean   func(string) string
	now     func() time.Time
	metrics *metrics.Metrics
	log     *zerolog.Logger
}

// RoomState is a point-in-time view of one live room.
type RoomState struct {
	Room    string
	Members []string
	History int
}

// NewHub creates a relay engine. Both arguments may be nil.
func NewHub(logger *zerolog.Logger, m *metrics.Metrics) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		inbound:  make(chan *Command, 64),
		done:     make(chan struct{}),
		clients:  make(map[string]*Client),
		presence: NewPresence(),
		rooms:    NewDirectory(),
		history:  NewHistory(),
		clean:    sanitize.Text,
		now:      time.Now,
		metrics:  m,
		log:      logger,
	}
}

// Run processes commands until ctx is cancelled. On exit every client queue is closed.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case cmd := <-h.inbound:
			h.handle(cmd)
		}
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// RegisterClient records a new connection and sends it its identifier.
func (h *Hub) RegisterClient(c *Client) {
	h.enqueue(&Command{Kind: commandRegister, Client: c})
}

// UnregisterClient runs disconnect cleanup for c and closes its event queue.
func (h *Hub) UnregisterClient(c *Client) {
	h.enqueue(&Command{Kind: commandUnregister, Client: c})
}

// Submit queues a client command. Commands submitted after the hub stopped are dropped.
func (h *Hub) Submit(cmd *Command) {
	h.enqueue(cmd)
}

// Rooms returns the live rooms in creation order.
func (h *Hub) Rooms(ctx context.Context) ([]RoomState, error) {
	reply := make(chan []RoomState, 1)
	select {
	case h.inbound <- &Command{Kind: commandSnapshot, snapshot: reply}:
	case <-h.done:
		return nil, ErrHubStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case rooms := <-reply:
		return rooms, nil
	case <-h.done:
		return nil, ErrHubStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (h *Hub) enqueue(cmd *Command) {
	select {
	case h.inbound <- cmd:
	case <-h.done:
	}
}

func (h *Hub) handle(cmd *Command) {
	switch cmd.Kind {
	case commandRegister:
		h.handleRegister(cmd.Client)
	case commandUnregister:
		h.handleUnregister(cmd.Client)
	case commandSnapshot:
		cmd.snapshot <- h.snapshot()
	case CommandJoinCall:
		if h.registered(cmd.Client) {
			h.handleJoin(cmd.Client.ID, cmd.Room)
		}
	case CommandSignal:
		if h.registered(cmd.Client) {
			h.handleSignal(cmd.Client.ID, cmd.Target, cmd.Payload)
		}
	case CommandChatMessage:
		if h.registered(cmd.Client) {
			h.handleChat(cmd.Client.ID, cmd.Text, cmd.Sender)
		}
	default:
		h.log.Warn().Int("kind", int(cmd.Kind)).Msg("unknown command kind")
	}
}

// registered reports whether c is the live client for its id. Commands that
// race with their own disconnect must not recreate membership.
func (h *Hub) registered(c *Client) bool {
	return c != nil && h.clients[c.ID] == c
}

func (h *Hub) handleRegister(c *Client) {
	if c == nil {
		return
	}
	if _, exists := h.clients[c.ID]; exists {
		h.log.Warn().Str("client_id", c.ID).Msg("duplicate connection id ignored")
		close(c.Events)
		return
	}
	h.clients[c.ID] = c
	h.presence.Connect(c.ID, h.now())
	h.metrics.ConnectionOpened()
	h.deliver(c, &Event{Kind: EventConnected, User: c.ID})
}

func (h *Hub) handleJoin(id, room string) {
	members := h.rooms.Join(room, id)
	h.metrics.SetRooms(h.rooms.Len())

	joined := &Event{Kind: EventUserJoined, Room: room, User: id, Members: members}
	for _, member := range members {
		h.emit(member, joined)
	}

	// The whole replay is one queue entry regardless of history length.
	if recs := h.history.Records(room); len(recs) > 0 {
		h.emit(id, &Event{Kind: EventHistory, Room: room, History: recs})
	}

	h.log.Debug().Str("room", room).Str("client_id", id).Strs("members", members).Msg("joined call")
}

func (h *Hub) handleSignal(from, target string, payload []byte) {
	if _, ok := h.clients[target]; !ok {
		h.log.Debug().Str("from", from).Str("target", target).Msg("signal target not connected")
		return
	}
	h.emit(target, &Event{Kind: EventSignal, User: from, Payload: payload})
	h.metrics.SignalRelayed()
}

func (h *Hub) handleChat(id, text, sender string) {
	rec := ChatRecord{
		Sender: h.clean(sender),
		Body:   h.clean(text),
		From:   id,
	}

	room, ok := h.rooms.FindRoomOf(id)
	if !ok {
		h.log.Debug().Str("client_id", id).Msg("chat message outside any room discarded")
		return
	}

	h.history.Append(room, rec)
	h.metrics.ChatRelayed()
	h.log.Debug().Str("room", room).Str("sender", rec.Sender).Str("body", rec.Body).Msg("chat message")

	ev := &Event{Kind: EventChatMessage, Room: room, Chat: rec}
	for _, member := range h.rooms.Members(room) {
		h.emit(member, ev)
	}
}

func (h *Hub) handleUnregister(c *Client) {
	if !h.registered(c) {
		return
	}
	id := c.ID
	delete(h.clients, id)
	close(c.Events)

	online, _ := h.presence.Disconnect(id, h.now())
	h.metrics.ConnectionClosed(online)

	// Notify against the pre-removal snapshot, then mutate the directory.
	memberships := h.rooms.Memberships(id)
	for _, m := range memberships {
		left := &Event{Kind: EventUserLeft, Room: m.Room, User: id}
		for _, member := range without(m.Members, id) {
			h.emit(member, left)
		}
	}
	h.rooms.Leave(id)
	h.metrics.SetRooms(h.rooms.Len())

	for _, m := range memberships {
		h.log.Info().
			Str("room", m.Room).
			Str("client_id", id).
			Float64("online_seconds", online.Seconds()).
			Msg("left call")
	}
	h.log.Debug().Str("client_id", id).Dur("online", online).Msg("client disconnected")
}

func (h *Hub) snapshot() []RoomState {
	keys := h.rooms.Rooms()
	out := make([]RoomState, 0, len(keys))
	for _, room := range keys {
		out = append(out, RoomState{
			Room:    room,
			Members: h.rooms.Members(room),
			History: h.history.Len(room),
		})
	}
	return out
}

// emit delivers ev to the connection with the given id if it is still live.
func (h *Hub) emit(id string, ev *Event) {
	c, ok := h.clients[id]
	if !ok {
		return
	}
	h.deliver(c, ev)
}

func (h *Hub) deliver(c *Client, ev *Event) {
	select {
	case c.Events <- ev:
	default:
		// Drop if slow consumer.
		h.metrics.EventDropped()
		h.log.Warn().Str("client_id", c.ID).Int("kind", int(ev.Kind)).Msg("client queue full, event dropped")
	}
}

func (h *Hub) closeAll() {
	for id, c := range h.clients {
		close(c.Events)
		delete(h.clients, id)
	}
}
