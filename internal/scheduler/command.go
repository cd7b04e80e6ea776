package scheduler

import "fmt"

// CommandKind enumerates the requests a client may send.
type CommandKind uint8

const (
	CmdRun CommandKind = iota + 1
	CmdStep
	CmdStop
	CmdReset
	CmdConfigure
	CmdTPS
	CmdGranularity
	// CmdAdjust nudges an adjustable control by Value steps.
	CmdAdjust
)

var commandNames = map[string]CommandKind{
	"run":         CmdRun,
	"step":        CmdStep,
	"stop":        CmdStop,
	"reset":       CmdReset,
	"configure":   CmdConfigure,
	"tps":         CmdTPS,
	"granularity": CmdGranularity,
	"adjust":      CmdAdjust,
}

// ParseCommandKind maps a wire name to a CommandKind.
func ParseCommandKind(s string) (CommandKind, error) {
	if k, ok := commandNames[s]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("scheduler: unknown command %q", s)
}

// Command is a request applied between ticks. Reply, when set, receives the
// outcome; it should be buffered so Serve never blocks on it.
type Command struct {
	Kind  CommandKind
	Key   string
	Value string
	Seed  *int64
	Reply chan<- error
}
