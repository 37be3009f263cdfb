package keytab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keytab/internal/input/key"
)

func TestEntryOutput(t *testing.T) {
	e := CreateEntry("Up+AnyMod", `\E[1;*A`)

	tests := []struct {
		name   string
		active key.Modifier
		want   string
	}{
		{"none", key.ModNone, "\x1b[1;1A"},
		{"shift", key.ModShift, "\x1b[1;2A"},
		{"alt", key.ModAlt, "\x1b[1;3A"},
		{"ctrl", key.ModCtrl, "\x1b[1;5A"},
		{"ctrl shift", key.ModCtrl | key.ModShift, "\x1b[1;6A"},
		{"all", key.ModCtrl | key.ModAlt | key.ModShift, "\x1b[1;8A"},
		{"meta ignored", key.ModMeta, "\x1b[1;1A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []byte(tt.want), e.Output(tt.active))
		})
	}

	assert.Equal(t, []byte("\x1b[1;*A"), e.Text, "Output does not modify the entry")

	plain := CreateEntry("Home", `\E[H`)
	assert.Equal(t, []byte("\x1b[H"), plain.Output(key.ModCtrl))
}

func TestEntryIsNull(t *testing.T) {
	assert.True(t, Entry{}.IsNull())
	assert.False(t, Entry{Text: []byte("x")}.IsNull())
	assert.False(t, Entry{Command: EraseCommand}.IsNull())
	assert.False(t, Entry{Condition: Condition{KeyCode: key.CodeHome}}.IsNull())
}

func TestEntryStrings(t *testing.T) {
	e, ok := ParseEntry(`key Home -AnyMod-AppCuKeys : "\E[H"`)
	require.True(t, ok)
	assert.Equal(t, "Home-AppCursorKeys-AnyModifier", e.ConditionString())
	assert.Equal(t, `"\E[H"`, e.ResultString())
	assert.Equal(t, `key Home-AppCursorKeys-AnyModifier : "\E[H"`, e.String())

	e, ok = ParseEntry(`key PgUp +Shift-AppScreen : scrollPageUp`)
	require.True(t, ok)
	assert.Equal(t, "scrollPageUp", e.ResultString())
	assert.Equal(t, "key PgUp+Shift-AppScreen : scrollPageUp", e.String())
}

func TestEntryEqual(t *testing.T) {
	a := CreateEntry("A+Shift", "x")
	b := CreateEntry("a+shift", "x")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(CreateEntry("A+Shift", "y")))
	assert.False(t, a.Equal(CreateEntry("A-Shift", "x")))
	assert.True(t, Entry{Text: nil}.Equal(Entry{Text: []byte{}}))
}
