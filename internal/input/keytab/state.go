package keytab

import "strings"

// State is a bitset of terminal state flags.
type State uint8

const (
	// NoState indicates no state flags.
	NoState State = 0

	// StateNewLine indicates the terminal is in new-line mode.
	StateNewLine State = 1 << (iota - 1)

	// StateAnsi indicates the terminal is in ANSI (as opposed to VT52) mode.
	StateAnsi

	// StateCursorKeys indicates application cursor-key mode.
	StateCursorKeys

	// StateAlternateScreen indicates the alternate screen is active.
	StateAlternateScreen

	// StateAnyModifier matches when any keyboard modifier is pressed.
	StateAnyModifier

	// StateApplicationKeypad indicates application keypad mode.
	StateApplicationKeypad
)

// AllStates lists every state flag in the order they are written.
var AllStates = []State{
	StateNewLine,
	StateAnsi,
	StateCursorKeys,
	StateAlternateScreen,
	StateAnyModifier,
	StateApplicationKeypad,
}

// Has returns true if s contains the specified flag.
func (s State) Has(flag State) bool {
	return s&flag != 0
}

// Name returns the written name of a single state flag, or "".
func (s State) Name() string {
	switch s {
	case StateNewLine:
		return "NewLine"
	case StateAnsi:
		return "Ansi"
	case StateCursorKeys:
		return "AppCursorKeys"
	case StateAlternateScreen:
		return "AppScreen"
	case StateAnyModifier:
		return "AnyModifier"
	case StateApplicationKeypad:
		return "AppKeypad"
	default:
		return ""
	}
}

// String returns a representation like "Ansi+AppCursorKeys".
func (s State) String() string {
	var parts []string
	for _, flag := range AllStates {
		if s.Has(flag) {
			parts = append(parts, flag.Name())
		}
	}
	return strings.Join(parts, "+")
}

var stateNameMap = map[string]State{
	"appcukeys":     StateCursorKeys,
	"appcursorkeys": StateCursorKeys,
	"ansi":          StateAnsi,
	"newline":       StateNewLine,
	"appscreen":     StateAlternateScreen,
	"anymod":        StateAnyModifier,
	"anymodifier":   StateAnyModifier,
	"appkeypad":     StateApplicationKeypad,
}

// StateFromName returns the state flag for a lower-case name, or NoState.
func StateFromName(name string) State {
	return stateNameMap[name]
}
