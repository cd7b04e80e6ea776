package server

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second
	// sendBuffer bounds the messages queued for one client; a client that
	// falls this far behind is dropped.
	sendBuffer = 64
)

// subscriber owns one connection. Only writeLoop writes to conn.
type subscriber struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newSubscriber(conn *websocket.Conn) *subscriber {
	return &subscriber{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

// enqueue queues data without blocking and reports whether it was accepted.
func (s *subscriber) enqueue(data []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.send <- data:
		return true
	default:
		return false
	}
}

func (s *subscriber) writeLoop(onError func(error)) {
	for {
		select {
		case <-s.done:
			return
		case data := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				onError(err)
				return
			}
		}
	}
}

func (s *subscriber) close() {
	s.once.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

// Hub fans frames and parameter updates out to every connected client and
// remembers the latest of each for clients that join later. Publishing
// never waits on a client's connection.
type Hub struct {
	mu          sync.Mutex
	subscribers map[uint64]*subscriber
	nextID      uint64
	lastFrame   []byte
	lastParams  []byte
	logger      *slog.Logger
}

// NewHub constructs an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subscribers: make(map[uint64]*subscriber),
		logger:      logger,
	}
}

// Subscribe registers conn and queues the latest parameters and frame for
// it. Queueing and registration happen under the hub lock so no broadcast
// can overtake them.
func (h *Hub) Subscribe(conn *websocket.Conn) (uint64, *subscriber) {
	sub := newSubscriber(conn)

	h.mu.Lock()
	for _, data := range [][]byte{h.lastParams, h.lastFrame} {
		if data != nil {
			sub.enqueue(data)
		}
	}
	h.nextID++
	id := h.nextID
	h.subscribers[id] = sub
	h.mu.Unlock()

	go sub.writeLoop(func(err error) {
		h.logger.Warn("write failed", "id", id, "err", err)
		h.Disconnect(id)
	})
	return id, sub
}

// Disconnect removes a subscriber and closes its connection. Unknown ids
// are ignored.
func (h *Hub) Disconnect(id uint64) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	delete(h.subscribers, id)
	h.mu.Unlock()
	if ok {
		sub.close()
	}
}

// Subscribers reports the number of connected clients.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

func (h *Hub) publishFrame(msg frameMessage) {
	h.publish(msg, &h.lastFrame)
}

func (h *Hub) publishParams(msg paramsMessage) {
	h.publish(msg, &h.lastParams)
}

func (h *Hub) publish(msg any, last *[]byte) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal failed", "err", err)
		return
	}

	h.mu.Lock()
	*last = data
	subs := make(map[uint64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		if !sub.enqueue(data) {
			h.logger.Warn("dropping slow subscriber", "id", id)
			h.Disconnect(id)
		}
	}
}
