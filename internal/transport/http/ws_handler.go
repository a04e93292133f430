package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"
	"net/url"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirecall-server/internal/config"
	"github.com/vovakirdan/wirecall-server/internal/core"
	"github.com/vovakirdan/wirecall-server/internal/proto"
	"github.com/vovakirdan/wirecall-server/internal/utils"
)

// WSHandler upgrades HTTP connections and bridges them to core.Client.
type WSHandler struct {
	hub             *core.Hub
	log             *zerolog.Logger
	accept          *websocket.AcceptOptions
	maxMessageBytes int64
	clientBuffer    int
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(hub *core.Hub, cfg *config.Config, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{
		hub:             hub,
		log:             logger,
		accept:          acceptOptions(cfg.AllowedOrigin),
		maxMessageBytes: cfg.MaxMessageBytes,
		clientBuffer:    cfg.ClientBuffer,
	}
}

// acceptOptions turns the configured origin into a websocket origin check.
func acceptOptions(allowedOrigin string) *websocket.AcceptOptions {
	if allowedOrigin == "" || allowedOrigin == "*" {
		return &websocket.AcceptOptions{InsecureSkipVerify: true}
	}
	host := allowedOrigin
	if u, err := url.Parse(allowedOrigin); err == nil && u.Host != "" {
		host = u.Host
	}
	return &websocket.AcceptOptions{OriginPatterns: []string{host}}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, h.accept)
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")
	if h.maxMessageBytes > 0 {
		conn.SetReadLimit(h.maxMessageBytes)
	}

	client := core.NewClient(utils.NewID(), h.clientBuffer)
	h.hub.RegisterClient(client)
	defer h.hub.UnregisterClient(client)

	connectedAt := time.Now()
	h.log.Debug().Str("client_id", client.ID).Str("remote", r.RemoteAddr).Msg("ws connected")
	defer func() {
		h.log.Debug().Str("client_id", client.ID).Dur("online", time.Since(connectedAt)).Msg("ws disconnected")
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != -1 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("client_id", client.ID).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		var inbound proto.Inbound
		if err := json.Unmarshal(data, &inbound); err != nil {
			h.log.Debug().Err(err).Str("client_id", client.ID).Msg("undecodable frame ignored")
			continue
		}

		cmd, ok := inboundToCommand(client, inbound)
		if !ok {
			h.log.Debug().Str("client_id", client.ID).Str("event", inbound.Event).Msg("unsupported frame ignored")
			continue
		}
		h.hub.Submit(cmd)
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case event, ok := <-client.Events:
			if !ok {
				return nil
			}
			for _, frame := range outboundFrames(event) {
				if err := wsjson.Write(ctx, conn, frame); err != nil {
					h.log.Error().Err(err).Str("client_id", client.ID).Msg("write ws event")
					return err
				}
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
