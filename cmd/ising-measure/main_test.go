package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"io"
	"strings"
	"testing"

	"ising/internal/harness"
)

func parseArgs(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg := NewConfig()
	fs := flag.NewFlagSet("measure", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	return cfg
}

func TestTempListAcceptsCommasAndRepeats(t *testing.T) {
	cfg := parseArgs(t, "-temps", "1, 2.5", "-temps", "3")
	if got := cfg.Temps.String(); got != "1,2.5,3" {
		t.Fatalf("temps = %q", got)
	}
	fs := flag.NewFlagSet("measure", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	NewConfig().Bind(fs)
	if err := fs.Parse([]string{"-temps", "hot"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRunPrintsSummary(t *testing.T) {
	cfg := parseArgs(t, "-size", "6", "-burnin", "2", "-steps", "5", "-reps", "2", "-hist", "4", "-plot", "-series")
	var out bytes.Buffer
	if err := run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	for _, want := range []string{"n6_torus_T2.269", "|M|", "magnetization histogram", "sweep\tM"} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunScanJSON(t *testing.T) {
	cfg := parseArgs(t, "-size", "6", "-burnin", "1", "-steps", "4", "-reps", "1", "-temps", "1,4", "-workers", "2", "-json")
	var out bytes.Buffer
	if err := run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	var decoded []struct {
		ID          string  `json:"id"`
		Temperature float64 `json:"temperature"`
	}
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v\n%s", err, out.String())
	}
	if len(decoded) != 2 || decoded[0].Temperature != 1 || decoded[1].Temperature != 4 {
		t.Fatalf("decoded %+v", decoded)
	}
}

func TestSummaryShowsZeroStdDevWhenRequested(t *testing.T) {
	var out bytes.Buffer
	printSummary(&out, "M", harness.Summary{Mean: 1}, true)
	if got := out.String(); got != "M    +1.000 ± 0.000\n" {
		t.Fatalf("got %q", got)
	}
	out.Reset()
	printSummary(&out, "M", harness.Summary{Mean: 1}, false)
	if got := out.String(); got != "M    +1.000\n" {
		t.Fatalf("got %q", got)
	}
}

func TestColdRunReportsStdDev(t *testing.T) {
	cfg := parseArgs(t, "-size", "4", "-temperature", "0.2", "-init", "up", "-burnin", "0", "-steps", "3", "-reps", "1")
	var out bytes.Buffer
	if err := run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "|M|  +1.000 ± 0.000") {
		t.Fatalf("expected explicit zero stdev:\n%s", out.String())
	}
}
