package ising

import (
	"errors"
	"flag"
	"io"
	"math"
	"testing"
)

func TestFromMapParsesModes(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"size":        "32",
		"topology":    "halo",
		"temperature": "1.75",
		"visit":       "boustrophedon",
		"accept":      "G_rule",
		"boundary":    "twisted",
		"init":        "down",
		"seed":        "-4",
		"unrelated":   "ignored",
	})
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Size:        32,
		Topology:    Halo,
		Temperature: 1.75,
		Visitation:  VisitBoustrophedon,
		Acceptance:  AcceptGlauber,
		Boundary:    BoundaryTwisted,
		Init:        InitDown,
		Seed:        -4,
	}
	if cfg != want {
		t.Fatalf("got %+v, expected %+v", cfg, want)
	}
}

func TestFromMapRejectsUnknownModes(t *testing.T) {
	bad := []map[string]string{
		{"visit": "zigzag"},
		{"accept": "heat_bath"},
		{"boundary": "reflective"},
		{"init": "stripes"},
		{"topology": "sphere"},
		{"temperature": "0"},
		{"temperature": "NaN"},
		{"size": "0"},
		{"seed": "x"},
	}
	for _, m := range bad {
		_, err := FromMap(m)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("FromMap(%v): expected *ConfigError, got %v", m, err)
		}
	}
}

func TestFromMapNilUsesDefaults(t *testing.T) {
	cfg, err := FromMap(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("nil map should yield defaults, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestModeNamesRoundTrip(t *testing.T) {
	for _, m := range VisitationModes() {
		if got, err := ParseVisitation(m.String()); err != nil || got != m {
			t.Fatalf("visitation %s: %v %v", m, got, err)
		}
	}
	for _, m := range AcceptanceModes() {
		if got, err := ParseAcceptance(m.String()); err != nil || got != m {
			t.Fatalf("acceptance %s: %v %v", m, got, err)
		}
	}
	for _, m := range BoundaryModes() {
		if got, err := ParseBoundary(m.String()); err != nil || got != m {
			t.Fatalf("boundary %s: %v %v", m, got, err)
		}
	}
	if len(VisitationModes()) != 8 || len(BoundaryModes()) != 8 || len(AcceptanceModes()) != 3 {
		t.Fatal("unexpected number of modes")
	}
}

func TestParametersSnapshot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 4
	cfg.Topology = Halo
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	snap := e.Parameters()
	temp, ok := snap.Lookup("temperature")
	if !ok || temp.Value != "2.269" {
		t.Fatalf("temperature parameter %+v", temp)
	}
	boundary, ok := snap.Lookup("boundary")
	if !ok || boundary.Value != "wraparound" || len(boundary.Options) != 8 {
		t.Fatalf("boundary parameter %+v", boundary)
	}

	if !e.SetFloatParameter("temperature", 100) {
		t.Fatal("temperature should be adjustable")
	}
	if e.Temperature() != 10 {
		t.Fatalf("expected clamp to 10, got %f", e.Temperature())
	}
	if e.SetFloatParameter("size", 3) {
		t.Fatal("size is not adjustable at run time")
	}
	if !e.SetIntParameter("seed", 5) || e.Config().Seed != 5 {
		t.Fatal("seed should be adjustable")
	}
	if len(e.ParameterControls()) == 0 {
		t.Fatal("expected at least one control")
	}
}

func TestBindParsesModeFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	args := []string{"-size", "16", "-topology", "halo", "-visit", "diagonal", "-accept", "G_rule", "-boundary", "underdog", "-init", "down", "-temperature", "1.5", "-seed", "7"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := Config{Size: 16, Topology: Halo, Temperature: 1.5, Visitation: VisitDiagonal, Acceptance: AcceptGlauber, Boundary: BoundaryUnderdog, Init: InitDown, Seed: 7}
	if cfg != want {
		t.Fatalf("cfg = %+v, want %+v", cfg, want)
	}

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-accept", "X_rule"}); err == nil {
		t.Fatalf("expected unknown acceptance rule to fail")
	}
}

func TestDefaultTemperatureIsRoundedCritical(t *testing.T) {
	got := DefaultConfig().Temperature
	if got != 2.269 {
		t.Fatalf("default temperature = %v, want 2.269", got)
	}
	if math.Abs(got-CriticalTemperature) > 5e-4 {
		t.Fatalf("default %v too far from critical %v", got, CriticalTemperature)
	}
}
