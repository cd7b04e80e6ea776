// Package server exposes an engine to a remote collaborator over a
// WebSocket: frames and parameter updates flow out, commands flow in and
// are applied by the scheduler between ticks.
package server

import (
	"context"
	"log/slog"

	"ising/internal/ising"
	"ising/internal/scheduler"
)

// SessionConfig controls pacing and logging of a Session.
type SessionConfig struct {
	TPS         int
	Granularity scheduler.Granularity
	Logger      *slog.Logger
}

// Session ties one engine, its scheduler and a broadcast hub together.
// Only the goroutine running Serve touches the engine.
type Session struct {
	engine *ising.Engine
	sched  *scheduler.Scheduler
	hub    *Hub
	cmds   chan scheduler.Command
	logger *slog.Logger
}

// NewSession wraps eng. The initial parameters and frame are published
// before NewSession returns so early subscribers receive them.
func NewSession(eng *ising.Engine, cfg SessionConfig) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		engine: eng,
		hub:    NewHub(logger),
		cmds:   make(chan scheduler.Command),
		logger: logger,
	}
	s.sched = scheduler.New(eng, scheduler.Config{
		TPS:         cfg.TPS,
		Granularity: cfg.Granularity,
		OnFrame:     s.publishFrame,
		OnState:     func(scheduler.State) { s.publishFrame() },
		OnParams:    s.publishParams,
	})
	s.publishParams()
	s.publishFrame()
	return s
}

// Hub returns the session's broadcast hub.
func (s *Session) Hub() *Hub { return s.hub }

// Commands returns the channel feeding the scheduler.
func (s *Session) Commands() chan<- scheduler.Command { return s.cmds }

// Serve runs the scheduler loop until ctx is cancelled.
func (s *Session) Serve(ctx context.Context) error {
	s.logger.Info("scheduler started", "tps", s.sched.TPS(), "granularity", s.sched.Granularity())
	return s.sched.Serve(ctx, s.cmds)
}

func (s *Session) publishFrame() {
	s.hub.publishFrame(newFrameMessage(s.engine.Snapshot(), s.sched.State()))
}

func (s *Session) publishParams() {
	s.hub.publishParams(paramsMessage{
		Type:        "params",
		Groups:      s.engine.Parameters().Groups,
		Controls:    s.engine.ParameterControls(),
		TPS:         s.sched.TPS(),
		Granularity: s.sched.Granularity().String(),
	})
}
