// Package scheduler drives a simulation with a cooperative tick loop. Each
// tick performs exactly one sweep or one microstep; commands from the
// controlling client are applied only between ticks.
package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ising/internal/core"
)

// State is the scheduler's run state.
type State uint8

const (
	Idle State = iota
	Busy
)

func (s State) String() string {
	if s == Busy {
		return "busy"
	}
	return "idle"
}

// Granularity selects how much work one tick performs.
type Granularity uint8

const (
	// PerSweep advances one full sweep per tick.
	PerSweep Granularity = iota
	// PerMicrostep advances one site update per tick.
	PerMicrostep
)

func (g Granularity) String() string {
	if g == PerMicrostep {
		return "microstep"
	}
	return "sweep"
}

// ParseGranularity maps "sweep" or "microstep" to a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "sweep", "":
		return PerSweep, nil
	case "microstep":
		return PerMicrostep, nil
	}
	return 0, fmt.Errorf("scheduler: unknown granularity %q", s)
}

// Config controls pacing and notification.
type Config struct {
	TPS         int
	Granularity Granularity
	// OnFrame runs after every tick that did work and after every reset.
	OnFrame func()
	// OnState runs when Run, Step or Stop changes the state.
	OnState func(State)
	// OnParams runs after a configuration, rate or granularity change.
	OnParams func()
}

// Scheduler owns a simulation while it runs. It is not safe for concurrent
// use; Serve serializes all access through its command channel.
type Scheduler struct {
	sim  core.Sim
	rate *core.TickRate

	state State
	gran  Granularity
	once  bool
	ticks uint64

	onFrame  func()
	onState  func(State)
	onParams func()
}

// New constructs an idle scheduler for sim.
func New(sim core.Sim, cfg Config) *Scheduler {
	return &Scheduler{
		sim:      sim,
		rate:     core.NewTickRate(cfg.TPS),
		gran:     cfg.Granularity,
		onFrame:  cfg.OnFrame,
		onState:  cfg.OnState,
		onParams: cfg.OnParams,
	}
}

// State reports whether a run or step is pending.
func (s *Scheduler) State() State { return s.state }

// Granularity reports the per-tick work unit.
func (s *Scheduler) Granularity() Granularity { return s.gran }

// Ticks returns the number of ticks that performed work.
func (s *Scheduler) Ticks() uint64 { return s.ticks }

// TPS reports the configured tick rate.
func (s *Scheduler) TPS() int { return s.rate.TPS() }

// Run starts continuous ticking. While busy it stops instead.
func (s *Scheduler) Run() {
	if s.state == Busy {
		s.Stop()
		return
	}
	s.once = false
	s.setState(Busy)
}

// Step schedules a single tick of work. While busy it stops instead.
func (s *Scheduler) Step() {
	if s.state == Busy {
		s.Stop()
		return
	}
	s.once = true
	s.setState(Busy)
}

// Stop returns to idle. Work already performed is kept.
func (s *Scheduler) Stop() {
	s.once = false
	s.setState(Idle)
}

func (s *Scheduler) setState(st State) {
	if s.state == st {
		return
	}
	s.state = st
	if s.onState != nil {
		s.onState(st)
	}
}

// Reset stops the scheduler and replaces the simulation state.
func (s *Scheduler) Reset(seed int64) {
	s.Stop()
	s.sim.Reset(seed)
	s.notifyFrame()
}

// SetGranularity changes the per-tick work unit.
func (s *Scheduler) SetGranularity(g Granularity) { s.gran = g }

// Tick performs one unit of work when busy and reports whether it did.
func (s *Scheduler) Tick() bool {
	if s.state != Busy {
		return false
	}
	if ms, ok := s.sim.(core.MicroStepper); ok && s.gran == PerMicrostep {
		ms.Microstep()
	} else {
		s.sim.Step()
	}
	s.ticks++
	if s.once {
		// The frame below already carries the idle state.
		s.state, s.once = Idle, false
	}
	s.notifyFrame()
	return true
}

func (s *Scheduler) notifyFrame() {
	if s.onFrame != nil {
		s.onFrame()
	}
}

// Serve runs the tick loop until ctx is cancelled or cmds is closed.
// Commands and ticks are handled on the calling goroutine, so a command
// never lands in the middle of a sweep.
func (s *Scheduler) Serve(ctx context.Context, cmds <-chan Command) error {
	ticker := time.NewTicker(s.rate.Interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd, ok := <-cmds:
			if !ok {
				return nil
			}
			tps := s.rate.TPS()
			err := s.Apply(cmd)
			if cmd.Reply != nil {
				cmd.Reply <- err
			}
			if s.rate.TPS() != tps {
				ticker.Reset(s.rate.Interval())
			}
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Apply executes a single command.
func (s *Scheduler) Apply(cmd Command) error {
	switch cmd.Kind {
	case CmdRun:
		s.Run()
	case CmdStep:
		s.Step()
	case CmdStop:
		s.Stop()
	case CmdReset:
		s.Reset(s.resetSeed(cmd))
	case CmdConfigure:
		cfg, ok := s.sim.(core.Configurable)
		if !ok {
			return fmt.Errorf("scheduler: %s does not accept configuration", s.sim.Name())
		}
		if err := cfg.Configure(cmd.Key, cmd.Value); err != nil {
			return err
		}
		s.notifyParams()
	case CmdTPS:
		tps, err := strconv.Atoi(cmd.Value)
		if err != nil || tps <= 0 {
			return fmt.Errorf("scheduler: invalid tps %q", cmd.Value)
		}
		s.rate.SetTPS(tps)
		s.notifyParams()
	case CmdGranularity:
		g, err := ParseGranularity(cmd.Value)
		if err != nil {
			return err
		}
		s.SetGranularity(g)
		s.notifyParams()
	case CmdAdjust:
		if err := s.adjust(cmd.Key, cmd.Value); err != nil {
			return err
		}
		s.notifyParams()
	default:
		return fmt.Errorf("scheduler: unknown command %d", cmd.Kind)
	}
	return nil
}

func (s *Scheduler) resetSeed(cmd Command) int64 {
	if cmd.Seed != nil {
		return *cmd.Seed
	}
	if provider, ok := s.sim.(core.ParameterProvider); ok {
		if p, ok := provider.Parameters().Lookup("seed"); ok {
			if seed, err := strconv.ParseInt(p.Value, 10, 64); err == nil {
				return seed
			}
		}
	}
	return time.Now().UnixNano()
}

func (s *Scheduler) notifyParams() {
	if s.onParams != nil {
		s.onParams()
	}
}

// adjust moves the control named key by steps increments of its step size.
func (s *Scheduler) adjust(key, steps string) error {
	n, err := strconv.Atoi(steps)
	if err != nil {
		return fmt.Errorf("scheduler: invalid adjustment %q", steps)
	}
	controls, ok := s.sim.(core.ParameterControlsProvider)
	if !ok {
		return fmt.Errorf("scheduler: %s has no adjustable controls", s.sim.Name())
	}
	var control *core.ParameterControl
	for _, c := range controls.ParameterControls() {
		if c.Key == key {
			control = &c
			break
		}
	}
	if control == nil {
		return fmt.Errorf("scheduler: %q is not adjustable", key)
	}
	provider, ok := s.sim.(core.ParameterProvider)
	if !ok {
		return fmt.Errorf("scheduler: %s does not report parameters", s.sim.Name())
	}
	current, ok := provider.Parameters().Lookup(key)
	if !ok {
		return fmt.Errorf("scheduler: %q is not adjustable", key)
	}

	switch control.Type {
	case core.ParamTypeFloat:
		setter, ok := s.sim.(core.FloatParameterSetter)
		v, err := strconv.ParseFloat(current.Value, 64)
		if !ok || err != nil {
			return fmt.Errorf("scheduler: %q is not adjustable", key)
		}
		if !setter.SetFloatParameter(key, v+float64(n)*control.Step) {
			return fmt.Errorf("scheduler: %q rejected the adjustment", key)
		}
	case core.ParamTypeInt:
		setter, ok := s.sim.(core.IntParameterSetter)
		v, err := strconv.Atoi(current.Value)
		if !ok || err != nil {
			return fmt.Errorf("scheduler: %q is not adjustable", key)
		}
		step := max(1, int(control.Step))
		if !setter.SetIntParameter(key, v+n*step) {
			return fmt.Errorf("scheduler: %q rejected the adjustment", key)
		}
	default:
		return fmt.Errorf("scheduler: %q is not adjustable", key)
	}
	return nil
}
