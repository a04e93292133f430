package core

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// nextEvent returns the very next event on ch, failing on timeout or close.
func nextEvent(t *testing.T, ch <-chan *Event) *Event {
	t.Helper()

	select {
	case ev, ok := <-ch:
		if !ok {
			t.Fatal("event channel closed")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return nil
}

// expectQuiet fails if ch yields an event. The hub is synced first so every
// previously submitted command has been applied.
func expectQuiet(t *testing.T, hub *Hub, ch <-chan *Event) {
	t.Helper()

	syncHub(t, hub)
	select {
	case ev, ok := <-ch:
		if ok {
			t.Fatalf("unexpected event: %+v", ev)
		}
	default:
	}
}

// syncHub waits until the hub has processed every command queued before it.
func syncHub(t *testing.T, hub *Hub) []RoomState {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	rooms, err := hub.Rooms(ctx)
	if err != nil {
		t.Fatalf("rooms snapshot: %v", err)
	}
	return rooms
}

func startHub(t *testing.T) *Hub {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(nil, nil)
	go hub.Run(ctx)
	return hub
}

// connect registers a client and consumes its EventConnected.
func connect(t *testing.T, hub *Hub, id string) *Client {
	t.Helper()

	c := NewClient(id, 0)
	hub.RegisterClient(c)
	ev := nextEvent(t, c.Events)
	if ev.Kind != EventConnected || ev.User != id {
		t.Fatalf("expected connected event for %s, got %+v", id, ev)
	}
	return c
}

func join(hub *Hub, c *Client, room string) {
	hub.Submit(&Command{Kind: CommandJoinCall, Client: c, Room: room})
}

func chat(hub *Hub, c *Client, text, sender string) {
	hub.Submit(&Command{Kind: CommandChatMessage, Client: c, Text: text, Sender: sender})
}

func expectJoined(t *testing.T, c *Client, user string, members ...string) {
	t.Helper()

	ev := nextEvent(t, c.Events)
	if ev.Kind != EventUserJoined || ev.User != user || !reflect.DeepEqual(ev.Members, members) {
		t.Fatalf("%s: expected user-joined(%s, %v), got %+v", c.ID, user, members, ev)
	}
}

func expectChat(t *testing.T, c *Client, body, sender, from string) {
	t.Helper()

	ev := nextEvent(t, c.Events)
	if ev.Kind != EventChatMessage {
		t.Fatalf("%s: expected chat-message, got %+v", c.ID, ev)
	}
	want := ChatRecord{Sender: sender, Body: body, From: from}
	if ev.Chat != want {
		t.Fatalf("%s: expected chat %+v, got %+v", c.ID, want, ev.Chat)
	}
}

// expectHistory asserts the next event replays exactly recs.
func expectHistory(t *testing.T, c *Client, recs ...ChatRecord) {
	t.Helper()

	ev := nextEvent(t, c.Events)
	if ev.Kind != EventHistory {
		t.Fatalf("%s: expected history replay, got %+v", c.ID, ev)
	}
	if !reflect.DeepEqual(ev.History, recs) {
		t.Fatalf("%s: expected history %+v, got %+v", c.ID, recs, ev.History)
	}
}

func roomState(rooms []RoomState, key string) (RoomState, bool) {
	for _, r := range rooms {
		if r.Room == key {
			return r, true
		}
	}
	return RoomState{}, false
}
