package trace

import "fmt"

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff Level = iota
	// LevelPhase traces pipeline phase boundaries.
	LevelPhase
	// LevelHost additionally traces host operations (reads, writes, resolution).
	LevelHost
	// LevelDebug traces everything including per-extension hook calls.
	LevelDebug
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelPhase:
		return "phase"
	case LevelHost:
		return "host"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "off", "OFF":
		return LevelOff, nil
	case "phase", "PHASE":
		return LevelPhase, nil
	case "host", "HOST":
		return LevelHost, nil
	case "debug", "DEBUG":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|phase|host|debug)", s)
	}
}

// ShouldEmit reports whether events of the given scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelOff:
		return false
	case LevelPhase:
		return scope <= ScopePhase
	case LevelHost:
		return scope <= ScopeHost
	case LevelDebug:
		return true
	}
	return false
}
