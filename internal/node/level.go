package node

import (
	"strconv"
	"strings"
)

// Full is the level a node reports when fully on.
const Full = 255

// Level is a nullable device level, e.g. 0-255 for a dimmer.
type Level struct {
	Value int
	Valid bool
}

// LevelOf returns a known level.
func LevelOf(v int) Level {
	return Level{Value: v, Valid: true}
}

// String returns the level as a decimal, or "unknown".
func (l Level) String() string {
	if !l.Valid {
		return "unknown"
	}
	return strconv.Itoa(l.Value)
}

// parseLevel converts a reported state value. A nil or blank value is an
// unknown level.
func parseLevel(value *string) (Level, error) {
	if value == nil {
		return Level{}, nil
	}
	s := strings.TrimSpace(*value)
	if s == "" {
		return Level{}, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return Level{}, err
	}
	return LevelOf(v), nil
}
