package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/wirecall-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:4001/ws", "WebSocket address")
	user := flag.String("user", "tester", "display name sent with the chat message")
	room := flag.String("room", "lobby", "room name")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	mustSend := func(event string, args ...any) error {
		in, err := proto.NewInbound(event, args...)
		if err != nil {
			return fmt.Errorf("build %s: %w", event, err)
		}
		if err := wsjson.Write(ctx, conn, in); err != nil {
			return fmt.Errorf("send: %w", err)
		}
		return nil
	}

	if err := mustSend(proto.EventJoinCall, *room); err != nil {
		return err
	}
	if err := mustSend(proto.EventChatMessage, *text, *user); err != nil {
		return err
	}

	var self string
	for {
		var outbound struct {
			Event string            `json:"event"`
			Args  []json.RawMessage `json:"args"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}
		fmt.Printf("Received event=%s args=%s\n", outbound.Event, outbound.Args)

		switch outbound.Event {
		case proto.EventConnected:
			if len(outbound.Args) > 0 {
				_ = json.Unmarshal(outbound.Args[0], &self)
			}
		case proto.EventChatMessage:
			// Replayed history arrives first; stop at our own message.
			if len(outbound.Args) < 3 {
				continue
			}
			var from string
			if err := json.Unmarshal(outbound.Args[2], &from); err != nil {
				return fmt.Errorf("unmarshal chat origin: %w", err)
			}
			if from == self {
				return nil
			}
		default:
			// keep looping for our message
		}
	}
}
