package domain

import "strings"

// Mode names the set of strategies eligible on a turn.
type Mode string

const (
	ModeElaboration  Mode = "elaboration"
	ModeImitation    Mode = "imitation"
	ModeVariation    Mode = "variation"
	ModeBacktracking Mode = "backtracking"
	ModeMixed        Mode = "mixed" // Union of every strategy group
)

// DefaultMode is used for empty and unrecognized mode names.
const DefaultMode = ModeMixed

// Modes lists every named mode in presentation order.
func Modes() []Mode {
	return []Mode{ModeMixed, ModeElaboration, ModeImitation, ModeVariation, ModeBacktracking}
}

// ParseMode resolves a user supplied mode name. Matching is case-insensitive;
// anything unrecognized resolves to DefaultMode and ok is false.
func ParseMode(name string) (mode Mode, ok bool) {
	candidate := Mode(strings.ToLower(strings.TrimSpace(name)))
	for _, m := range Modes() {
		if m == candidate {
			return m, true
		}
	}
	return DefaultMode, false
}

func (m Mode) String() string {
	return string(m)
}
