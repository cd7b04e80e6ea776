package server

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"ising/internal/core"
	"ising/internal/ising"
)

type inbound struct {
	Type          string                `json:"type"`
	Sweep         int                   `json:"sweep"`
	Size          int                   `json:"size"`
	Cells         []int8                `json:"cells"`
	Magnetization string                `json:"magnetization"`
	State         string                `json:"state"`
	Message       string                `json:"message"`
	Groups        []core.ParameterGroup `json:"groups"`
	TPS           int                   `json:"tps"`
	Granularity   string                `json:"granularity"`
}

func (m inbound) param(key string) string {
	p, _ := core.ParameterSnapshot{Groups: m.Groups}.Lookup(key)
	return p.Value
}

func startSession(t *testing.T) *websocket.Conn {
	t.Helper()
	cfg := ising.DefaultConfig()
	cfg.Size = 4
	cfg.Init = ising.InitUp
	eng, err := ising.NewEngine(cfg)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	session := NewSession(eng, SessionConfig{TPS: 200})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		session.Serve(ctx)
		close(done)
	}()

	srv := httptest.NewServer(NewHandler(session, HandlerConfig{}))
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		srv.Close()
		cancel()
		<-done
	})
	return conn
}

func readUntil(t *testing.T, conn *websocket.Conn, match func(inbound) bool) inbound {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var msg inbound
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if match(msg) {
			return msg
		}
	}
}

func TestNewClientReceivesParamsThenFrame(t *testing.T) {
	conn := startSession(t)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var first, second inbound
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("read: %v", err)
	}
	if first.Type != "params" || second.Type != "frame" {
		t.Fatalf("got %q then %q, want params then frame", first.Type, second.Type)
	}
	if first.param("temperature") != "2.269" {
		t.Fatalf("temperature param = %q", first.param("temperature"))
	}
	if first.TPS != 200 || first.Granularity != "sweep" {
		t.Fatalf("tps=%d granularity=%q", first.TPS, first.Granularity)
	}
	if second.Size != 4 || len(second.Cells) != 16 {
		t.Fatalf("frame size=%d cells=%d", second.Size, len(second.Cells))
	}
	if second.Magnetization != "+1.000" || second.State != "idle" {
		t.Fatalf("frame M=%q state=%q", second.Magnetization, second.State)
	}
}

func TestStepProducesOneSweep(t *testing.T) {
	conn := startSession(t)
	readUntil(t, conn, func(m inbound) bool { return m.Type == "frame" })

	if err := conn.WriteJSON(map[string]string{"type": "step"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	frame := readUntil(t, conn, func(m inbound) bool { return m.Type == "frame" && m.Sweep == 1 })
	if frame.State != "idle" {
		t.Fatalf("one-shot step left state %q", frame.State)
	}
}

func TestConfigureBroadcastsParams(t *testing.T) {
	conn := startSession(t)
	readUntil(t, conn, func(m inbound) bool { return m.Type == "frame" })

	msg := map[string]string{"type": "configure", "key": "visit", "value": "checkerboard"}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
	params := readUntil(t, conn, func(m inbound) bool { return m.Type == "params" })
	if got := params.param("visit"); got != "checkerboard" {
		t.Fatalf("visit = %q, want checkerboard", got)
	}

	if err := conn.WriteJSON(map[string]string{"type": "granularity", "granularity": "microstep"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	params = readUntil(t, conn, func(m inbound) bool { return m.Type == "params" })
	if params.Granularity != "microstep" {
		t.Fatalf("granularity = %q", params.Granularity)
	}
}

func TestRejectedCommandsReportErrors(t *testing.T) {
	conn := startSession(t)
	readUntil(t, conn, func(m inbound) bool { return m.Type == "frame" })

	bad := []any{
		map[string]string{"type": "configure", "key": "accept", "value": "X_rule"},
		map[string]string{"type": "configure", "key": "boundary", "value": "zero"},
		map[string]string{"type": "jump"},
	}
	for _, msg := range bad {
		if err := conn.WriteJSON(msg); err != nil {
			t.Fatalf("write: %v", err)
		}
		reply := readUntil(t, conn, func(m inbound) bool { return m.Type == "error" })
		if reply.Message == "" {
			t.Fatalf("empty error message for %v", msg)
		}
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	readUntil(t, conn, func(m inbound) bool { return m.Type == "error" })
}

func TestFrameMessageFormatsReadouts(t *testing.T) {
	snap := ising.Snapshot{Sweep: 3, Size: 2, Magnetization: -0.0001, LocalCorrelation: 0.5}
	msg := newFrameMessage(snap, 0)
	if msg.Magnetization != "+0.000" || msg.LocalCorrelation != "+0.500" {
		t.Fatalf("readouts %q %q", msg.Magnetization, msg.LocalCorrelation)
	}
	if msg.Type != "frame" || msg.State != "idle" {
		t.Fatalf("type=%q state=%q", msg.Type, msg.State)
	}
}
