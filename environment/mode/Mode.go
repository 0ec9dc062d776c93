// Package mode defines the closed set of game modes a maze can be
// played in. Components that behave differently per mode index tables
// by Mode rather than switching on strings.
package mode

import (
	"fmt"
	"strings"
)

// Mode is a game mode
type Mode int

const (
	Static Mode = iota
	MovingObstacles
	Competitive
	PartialObservability
	Survival
	Procedural
)

// Count is the number of game modes
const Count = 6

var names = [Count]string{
	Static:               "static",
	MovingObstacles:      "moving",
	Competitive:          "competitive",
	PartialObservability: "fog",
	Survival:             "survival",
	Procedural:           "procedural",
}

// All returns every mode in declaration order
func All() []Mode {
	modes := make([]Mode, Count)
	for i := range modes {
		modes[i] = Mode(i)
	}
	return modes
}

// Valid returns whether m is one of the declared modes
func (m Mode) Valid() bool {
	return m >= 0 && m < Count
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return names[m]
}

// Parse returns the Mode with the given name
func Parse(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == name {
			return Mode(i), nil
		}
	}
	return Static, fmt.Errorf("parse: unknown mode %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("marshalText: invalid mode %d", int(m))
	}
	return []byte(names[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return fmt.Errorf("unmarshalText: %v", err)
	}
	*m = parsed
	return nil
}

// HasMovingObstacles returns whether moving walls and rotating
// sections are placed in the mode
func (m Mode) HasMovingObstacles() bool {
	return m == MovingObstacles || m == Procedural
}

// HasHazards returns whether hazards are placed in the mode
func (m Mode) HasHazards() bool {
	return m == Survival || m == Procedural
}

// HasItems returns whether consumable items are placed in the mode
func (m Mode) HasItems() bool {
	return m == Survival || m == Competitive
}

// HasOpponents returns whether scripted opponents are placed in the mode
func (m Mode) HasOpponents() bool {
	return m == Competitive
}

// HasFog returns whether the agent only sees cells it has discovered
func (m Mode) HasFog() bool {
	return m == PartialObservability
}

// DrainsResources returns whether oxygen and energy drain over time
func (m Mode) DrainsResources() bool {
	return m == Survival
}
