package stream

import "fmt"

// Mode selects how the pipeline evaluates each message.
type Mode int

const (
	// ModeStateless evaluates each message independently.
	ModeStateless Mode = iota
	// ModeStateful treats consecutive messages as one sequence.
	ModeStateful
)

// String returns the config spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeStateless:
		return "stateless"
	case ModeStateful:
		return "stateful"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "stateless" or "stateful". The empty string maps to
// ModeStateless.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "stateless":
		return ModeStateless, nil
	case "stateful":
		return ModeStateful, nil
	default:
		return 0, fmt.Errorf("unknown pipeline mode %q", s)
	}
}
