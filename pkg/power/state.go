// Package power reads the host power source and classifies it into the
// fixed set of states the rest of the daemon keys off.
package power

import "strings"

// State is the classified power source.
type State int

const (
	OnAC State = iota
	OnBattery
	LowBattery
)

// String returns the settings section name for the state.
func (s State) String() string {
	switch s {
	case OnBattery:
		return "on_battery"
	case LowBattery:
		return "low_battery"
	default:
		return "on_ac"
	}
}

// Title returns the human-readable form used in notifications.
func (s State) Title() string {
	words := strings.Split(s.String(), "_")
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
