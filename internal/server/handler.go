package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"ising/internal/scheduler"
)

const commandTimeout = 5 * time.Second

var errSchedulerBusy = errors.New("scheduler did not accept the command in time")

// HandlerConfig controls logging of the WebSocket handler.
type HandlerConfig struct {
	Logger *slog.Logger
}

// Handler upgrades HTTP requests to WebSocket sessions attached to a hub
// and forwards client commands to the scheduler.
type Handler struct {
	hub      *Hub
	cmds     chan<- scheduler.Command
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewHandler constructs a handler for the session's hub and command
// channel.
func NewHandler(s *Session, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		hub:    s.Hub(),
		cmds:   s.Commands(),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	id, sub := h.hub.Subscribe(conn)
	log := h.logger.With("client", id)
	log.Info("client connected", "remote", r.RemoteAddr)
	defer func() {
		h.hub.Disconnect(id)
		log.Info("client disconnected")
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			log.Warn("discarding malformed message", "err", err)
			if !h.sendError(sub, err) {
				return
			}
			continue
		}

		if err := h.dispatch(msg); err != nil {
			log.Debug("command rejected", "type", msg.Type, "key", msg.Key, "value", msg.Value, "err", err)
			if !h.sendError(sub, err) {
				return
			}
		}
	}
}

func (h *Handler) dispatch(msg clientMessage) error {
	cmd, err := msg.command()
	if err != nil {
		return err
	}
	reply := make(chan error, 1)
	cmd.Reply = reply

	timer := time.NewTimer(commandTimeout)
	defer timer.Stop()
	select {
	case h.cmds <- cmd:
	case <-timer.C:
		return errSchedulerBusy
	}
	return <-reply
}

func (h *Handler) sendError(sub *subscriber, cause error) bool {
	data, err := json.Marshal(errorMessage{Type: "error", Message: cause.Error()})
	if err != nil {
		h.logger.Error("marshal failed", "err", err)
		return true
	}
	return sub.enqueue(data)
}
