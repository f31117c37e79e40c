package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff   Level = iota // no tracing
	LevelPhase              // driver + pass boundaries
	LevelFile               // per-file events
	LevelDebug              // everything
)

var levelNames = [...]string{
	LevelOff:   "off",
	LevelPhase: "phase",
	LevelFile:  "file",
	LevelDebug: "debug",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level; case does not matter.
func ParseLevel(s string) (Level, error) {
	for l, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|phase|file|debug)", s)
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePass
	case LevelFile:
		return scope <= ScopeFile
	case LevelDebug:
		return true
	default:
		return false
	}
}
