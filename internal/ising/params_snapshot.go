package ising

import (
	"math"
	"strconv"

	"ising/internal/core"
)

// Parameters describes the current configuration for the controlling client.
func (e *Engine) Parameters() core.ParameterSnapshot {
	cfg := e.cfg
	lattice := []core.Parameter{
		intParam("size", "Size", cfg.Size),
		choiceParam("topology", "Topology", cfg.Topology.String(), []string{Torus.String(), Halo.String()}),
		int64Param("seed", "Seed", cfg.Seed),
		choiceParam("init", "Initial pattern", cfg.Init.String(), append([]string(nil), initNames[:]...)),
	}
	dynamics := []core.Parameter{
		floatParam("temperature", "Temperature", cfg.Temperature),
		choiceParam("visit", "Visitation", cfg.Visitation.String(), names(VisitationModes(), VisitationMode.String)),
		choiceParam("accept", "Acceptance", cfg.Acceptance.String(), names(AcceptanceModes(), AcceptanceMode.String)),
	}
	if cfg.Topology == Halo {
		dynamics = append(dynamics, choiceParam("boundary", "Boundary", cfg.Boundary.String(), names(BoundaryModes(), BoundaryMode.String)))
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Lattice", Params: lattice},
		{Name: "Dynamics", Params: dynamics},
	}}
}

// ParameterControls lists the numerically adjustable parameters.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "temperature", Label: "Temperature", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, HasMin: true, Max: 10, HasMax: true},
		{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Step: 1},
	}
}

// SetFloatParameter updates a float parameter, clamping to the control
// bounds. It reports whether the key was recognized.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "temperature":
		if math.IsNaN(value) {
			return false
		}
		value = math.Min(math.Max(value, 0.05), 10)
		return e.SetTemperature(value) == nil
	}
	return false
}

// SetIntParameter updates an integer parameter. It reports whether the key
// was recognized.
func (e *Engine) SetIntParameter(key string, value int) bool {
	switch key {
	case "seed":
		e.cfg.Seed = int64(value)
		return true
	}
	return false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func choiceParam(key, label, value string, options []string) core.Parameter {
	return core.Parameter{
		Key:     key,
		Label:   label,
		Type:    core.ParamTypeChoice,
		Value:   value,
		Options: options,
	}
}
