package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/wirecall-server/internal/proto"
)

// frame is an outbound event with undecoded arguments.
type frame struct {
	Event string            `json:"event"`
	Args  []json.RawMessage `json:"args"`
}

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:4001/ws", "WebSocket address")
	user := flag.String("user", "cli-user", "display name")
	room := flag.String("room", "lobby", "room to join")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	join, err := proto.NewInbound(proto.EventJoinCall, *room)
	if err != nil {
		return fmt.Errorf("build join: %w", err)
	}
	if err := wsjson.Write(ctx, conn, join); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Printf("Connected to %s as %s in room %s\n", *addr, *user, *room)
	fmt.Println("Type messages and press Enter to send. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	writeLoop(ctx, conn, *user)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var f frame
		if err := wsjson.Read(ctx, conn, &f); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		args := make([]any, len(f.Args))
		for i, raw := range f.Args {
			if err := json.Unmarshal(raw, &args[i]); err != nil {
				args[i] = string(raw)
			}
		}

		switch f.Event {
		case proto.EventConnected:
			if len(args) >= 1 {
				fmt.Printf("connection id %v\n", args[0])
			}
		case proto.EventChatMessage:
			if len(args) >= 3 {
				fmt.Printf("%v (%v): %v\n", args[1], args[2], args[0])
			}
		case proto.EventUserJoined:
			if len(args) >= 2 {
				fmt.Printf("%v joined, members %v\n", args[0], args[1])
			}
		case proto.EventUserLeft:
			if len(args) >= 1 {
				fmt.Printf("%v left\n", args[0])
			}
		default:
			fmt.Printf("event=%s args=%v\n", f.Event, args)
		}
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn, user string) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}

			msg, err := proto.NewInbound(proto.EventChatMessage, text, user)
			if err != nil {
				log.Printf("build msg: %v", err)
				return
			}
			if err := wsjson.Write(ctx, conn, msg); err != nil {
				log.Printf("send error: %v", err)
				return
			}
		}
	}
}
