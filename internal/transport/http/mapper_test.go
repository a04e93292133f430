package http

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/vovakirdan/wirecall-server/internal/core"
	"github.com/vovakirdan/wirecall-server/internal/proto"
)

func TestInboundToCommand(t *testing.T) {
	client := core.NewClient("c1", 1)

	tests := []struct {
		name  string
		frame string
		want  *core.Command
	}{
		{
			name:  "join",
			frame: `{"event":"join-call","args":["lobby"]}`,
			want:  &core.Command{Kind: core.CommandJoinCall, Client: client, Room: "lobby"},
		},
		{
			name:  "join without room",
			frame: `{"event":"join-call","args":[]}`,
		},
		{
			name:  "signal",
			frame: `{"event":"signal","args":["c2",{"sdp":"x"}]}`,
			want:  &core.Command{Kind: core.CommandSignal, Client: client, Target: "c2", Payload: json.RawMessage(`{"sdp":"x"}`)},
		},
		{
			name:  "signal without payload",
			frame: `{"event":"signal","args":["c2"]}`,
			want:  &core.Command{Kind: core.CommandSignal, Client: client, Target: "c2", Payload: json.RawMessage(`null`)},
		},
		{
			name:  "chat",
			frame: `{"event":"chat-message","args":["hello","Alice"]}`,
			want:  &core.Command{Kind: core.CommandChatMessage, Client: client, Text: "hello", Sender: "Alice"},
		},
		{
			name:  "chat with number body",
			frame: `{"event":"chat-message","args":[7]}`,
			want:  &core.Command{Kind: core.CommandChatMessage, Client: client, Text: "7"},
		},
		{
			name:  "unknown",
			frame: `{"event":"hello","args":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in proto.Inbound
			if err := json.Unmarshal([]byte(tt.frame), &in); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			got, ok := inboundToCommand(client, in)
			if tt.want == nil {
				if ok {
					t.Fatalf("expected frame to be ignored, got %+v", got)
				}
				return
			}
			if !ok || !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %+v (ok=%v), want %+v", got, ok, tt.want)
			}
		})
	}
}

func TestOutboundFrames(t *testing.T) {
	tests := []struct {
		name  string
		event *core.Event
		want  []string
	}{
		{
			name:  "user joined",
			event: &core.Event{Kind: core.EventUserJoined, User: "c2", Members: []string{"c1", "c2"}},
			want:  []string{`{"event":"user-joined","args":["c2",["c1","c2"]]}`},
		},
		{
			name:  "user left",
			event: &core.Event{Kind: core.EventUserLeft, User: "c1"},
			want:  []string{`{"event":"user-left","args":["c1"]}`},
		},
		{
			name:  "chat",
			event: &core.Event{Kind: core.EventChatMessage, Chat: core.ChatRecord{Sender: "Alice", Body: "hello", From: "c1"}},
			want:  []string{`{"event":"chat-message","args":["hello","Alice","c1"]}`},
		},
		{
			name:  "signal",
			event: &core.Event{Kind: core.EventSignal, User: "c1", Payload: json.RawMessage(`{"type":"answer"}`)},
			want:  []string{`{"event":"signal","args":["c1",{"type":"answer"}]}`},
		},
		{
			name:  "connected",
			event: &core.Event{Kind: core.EventConnected, User: "c9"},
			want:  []string{`{"event":"connected","args":["c9"]}`},
		},
		{
			name: "history",
			event: &core.Event{Kind: core.EventHistory, History: []core.ChatRecord{
				{Sender: "Alice", Body: "first", From: "c1"},
				{Sender: "Bob", Body: "second", From: "c2"},
			}},
			want: []string{
				`{"event":"chat-message","args":["first","Alice","c1"]}`,
				`{"event":"chat-message","args":["second","Bob","c2"]}`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := outboundFrames(tt.event)
			got := make([]string, 0, len(frames))
			for _, f := range frames {
				data, err := json.Marshal(f)
				if err != nil {
					t.Fatalf("marshal: %v", err)
				}
				got = append(got, string(data))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
