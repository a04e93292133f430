package http

import (
	"github.com/vovakirdan/wirecall-server/internal/core"
	"github.com/vovakirdan/wirecall-server/internal/proto"
)

// inboundToCommand maps a client frame to a core command. Frames with an
// unknown event name or a missing room/target are reported as not ok and
// ignored by the caller.
func inboundToCommand(client *core.Client, inbound proto.Inbound) (*core.Command, bool) {
	switch inbound.Event {
	case proto.EventJoinCall:
		room, ok := inbound.StringArg(0)
		if !ok {
			return nil, false
		}
		return &core.Command{
			Kind:   core.CommandJoinCall,
			Client: client,
			Room:   room,
		}, true
	case proto.EventSignal:
		target, ok := inbound.StringArg(0)
		if !ok {
			return nil, false
		}
		return &core.Command{
			Kind:    core.CommandSignal,
			Client:  client,
			Target:  target,
			Payload: inbound.RawArg(1),
		}, true
	case proto.EventChatMessage:
		return &core.Command{
			Kind:   core.CommandChatMessage,
			Client: client,
			Text:   inbound.TextArg(0),
			Sender: inbound.TextArg(1),
		}, true
	default:
		return nil, false
	}
}

// outboundFrames maps a core event to the frames written to the client.
// A history event expands into one chat-message frame per record.
func outboundFrames(event *core.Event) []proto.Outbound {
	if event.Kind == core.EventHistory {
		frames := make([]proto.Outbound, 0, len(event.History))
		for _, rec := range event.History {
			frames = append(frames, chatFrame(rec))
		}
		return frames
	}
	return []proto.Outbound{outboundFromEvent(event)}
}

func chatFrame(rec core.ChatRecord) proto.Outbound {
	return proto.Outbound{
		Event: proto.EventChatMessage,
		Args:  []any{rec.Body, rec.Sender, rec.From},
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventConnected:
		return proto.Outbound{
			Event: proto.EventConnected,
			Args:  []any{event.User},
		}
	case core.EventUserJoined:
		members := event.Members
		if members == nil {
			members = []string{}
		}
		return proto.Outbound{
			Event: proto.EventUserJoined,
			Args:  []any{event.User, members},
		}
	case core.EventUserLeft:
		return proto.Outbound{
			Event: proto.EventUserLeft,
			Args:  []any{event.User},
		}
	case core.EventChatMessage:
		return chatFrame(event.Chat)
	case core.EventSignal:
		return proto.Outbound{
			Event: proto.EventSignal,
			Args:  []any{event.User, event.Payload},
		}
	default:
		return proto.Outbound{}
	}
}
