package server

import (
	"ising/internal/core"
	"ising/internal/ising"
	"ising/internal/scheduler"
)

// frameMessage carries the lattice and readouts after a sweep, microstep,
// reset or state change.
type frameMessage struct {
	Type             string `json:"type"`
	Sweep            int    `json:"sweep"`
	Size             int    `json:"size"`
	GridSize         int    `json:"gridSize"`
	Haloed           bool   `json:"haloed"`
	Cells            []int8 `json:"cells"`
	Visited          []bool `json:"visited"`
	Magnetization    string `json:"magnetization"`
	LocalCorrelation string `json:"localCorrelation"`
	Energy           int    `json:"energy"`
	State            string `json:"state"`
}

func newFrameMessage(snap ising.Snapshot, state scheduler.State) frameMessage {
	return frameMessage{
		Type:             "frame",
		Sweep:            snap.Sweep,
		Size:             snap.Size,
		GridSize:         snap.GridSize,
		Haloed:           snap.Haloed,
		Cells:            snap.Cells,
		Visited:          snap.Visited,
		Magnetization:    ising.FormatReadout(snap.Magnetization),
		LocalCorrelation: ising.FormatReadout(snap.LocalCorrelation),
		Energy:           snap.Energy,
		State:            state.String(),
	}
}

type paramsMessage struct {
	Type        string                  `json:"type"`
	Groups      []core.ParameterGroup   `json:"groups"`
	Controls    []core.ParameterControl `json:"controls,omitempty"`
	TPS         int                     `json:"tps"`
	Granularity string                  `json:"granularity"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type clientMessage struct {
	Type        string `json:"type"`
	Key         string `json:"key,omitempty"`
	Value       string `json:"value,omitempty"`
	Seed        *int64 `json:"seed,omitempty"`
	Granularity string `json:"granularity,omitempty"`
}

// command translates a client message into a scheduler command. The
// granularity field is shorthand for a granularity command.
func (m clientMessage) command() (scheduler.Command, error) {
	kind, err := scheduler.ParseCommandKind(m.Type)
	if err != nil {
		return scheduler.Command{}, err
	}
	cmd := scheduler.Command{Kind: kind, Key: m.Key, Value: m.Value, Seed: m.Seed}
	if kind == scheduler.CmdGranularity && cmd.Value == "" {
		cmd.Value = m.Granularity
	}
	return cmd, nil
}
