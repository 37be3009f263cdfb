package keytab

import (
	"bytes"

	"github.com/dshills/keytab/internal/input/key"
)

// Entry is one decoded key line.
type Entry struct {
	Condition

	// Command is the action to perform, or NoCommand when Text applies.
	Command Command

	// Text is the literal output with escape sequences already resolved.
	Text []byte
}

// IsNull returns true if the entry carries no key, condition, command or text.
func (e Entry) IsNull() bool {
	return e.Condition == (Condition{}) && e.Command == NoCommand && len(e.Text) == 0
}

// Equal reports whether two entries are identical.
func (e Entry) Equal(other Entry) bool {
	return e.Condition == other.Condition &&
		e.Command == other.Command &&
		bytes.Equal(e.Text, other.Text)
}

// EscapedText returns Text in translator escape syntax.
func (e Entry) EscapedText() string {
	return Escape(e.Text)
}

// ConditionString returns the key sequence expression of the entry.
func (e Entry) ConditionString() string {
	return e.Condition.String()
}

// ResultString returns the command name, or the quoted escaped text.
func (e Entry) ResultString() string {
	if e.Command != NoCommand {
		return e.Command.String()
	}
	return `"` + e.EscapedText() + `"`
}

// String returns the entry as a key line.
func (e Entry) String() string {
	return "key " + e.ConditionString() + " : " + e.ResultString()
}

// Output returns the bytes to send for a key press with the given active
// modifiers. Each '*' in the text is replaced by the xterm modifier
// parameter: 1 + Shift + 2*Alt + 4*Ctrl.
func (e Entry) Output(active key.Modifier) []byte {
	if bytes.IndexByte(e.Text, '*') < 0 {
		return e.Text
	}

	param := byte(1)
	if active.Has(key.ModShift) {
		param++
	}
	if active.Has(key.ModAlt) {
		param += 2
	}
	if active.Has(key.ModCtrl) {
		param += 4
	}

	out := bytes.Clone(e.Text)
	for i, ch := range out {
		if ch == '*' {
			out[i] = '0' + param
		}
	}
	return out
}
