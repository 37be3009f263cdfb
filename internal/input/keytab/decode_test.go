package keytab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keytab/internal/input/key"
)

func TestDecodeSequence(t *testing.T) {
	tests := []struct {
		seq  string
		want Condition
	}{
		{
			seq: "home-anymod-appcukeys",
			want: Condition{
				KeyCode:   key.CodeHome,
				StateMask: StateAnyModifier | StateCursorKeys,
			},
		},
		{
			seq: "up+shift",
			want: Condition{
				KeyCode:      key.CodeUp,
				Modifiers:    key.ModShift,
				ModifierMask: key.ModShift,
			},
		},
		{
			seq: "tab+shift-ansi",
			want: Condition{
				KeyCode:      key.CodeTab,
				Modifiers:    key.ModShift,
				ModifierMask: key.ModShift,
				StateMask:    StateAnsi,
			},
		},
		{
			seq: "f1+keypad-newline+appscreen",
			want: Condition{
				KeyCode:      key.CodeF1,
				Modifiers:    key.ModKeypad,
				ModifierMask: key.ModKeypad,
				State:        StateAlternateScreen,
				StateMask:    StateNewLine | StateAlternateScreen,
			},
		},
		{
			seq: "space+ctrl-control",
			want: Condition{
				KeyCode:      key.CodeSpace,
				Modifiers:    key.ModCtrl,
				ModifierMask: key.ModCtrl,
			},
		},
		{
			seq: "enter+appkeypad+anymodifier+appcursorkeys",
			want: Condition{
				KeyCode:   key.CodeEnter,
				State:     StateApplicationKeypad | StateAnyModifier | StateCursorKeys,
				StateMask: StateApplicationKeypad | StateAnyModifier | StateCursorKeys,
			},
		},
		{
			seq:  "+",
			want: Condition{KeyCode: '+'},
		},
		{
			seq: "+-shift",
			want: Condition{
				KeyCode:      '+',
				ModifierMask: key.ModShift,
			},
		},
		{
			seq: "-+alt-meta",
			want: Condition{
				KeyCode:      '-',
				Modifiers:    key.ModAlt,
				ModifierMask: key.ModAlt | key.ModMeta,
			},
		},
		{
			seq:  "x",
			want: Condition{KeyCode: 'X'},
		},
		{
			seq:  "",
			want: Condition{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeSequence(tt.seq))
		})
	}
}

func TestDecodeFirstItemAlwaysWanted(t *testing.T) {
	// The leading '-' is the Minus key; only later items see its polarity.
	got := DecodeSequence("-shift")
	assert.Equal(t, key.Code('-'), got.KeyCode)
	assert.Equal(t, key.ModShift, got.ModifierMask)
	assert.Equal(t, key.ModNone, got.Modifiers)

	got = DecodeSequence("shift+home")
	assert.Equal(t, key.ModShift, got.Modifiers, "first item is wanted without a separator")
	assert.Equal(t, key.CodeHome, got.KeyCode)
}

func TestDecodeCaseInsensitive(t *testing.T) {
	assert.Equal(t, DecodeSequence("home-anymod-appcukeys"), DecodeSequence("Home-AnyMod-AppCuKeys"))
	assert.Equal(t, DecodeSequence("up+shift"), DecodeSequence("UP+SHIFT"))
}

func TestDecodeIdempotent(t *testing.T) {
	d := NewDecoder(nil, nil)
	for _, seq := range []string{"home-anymod-appcukeys", "tab+shift+ansi", "+-shift", "f12+alt+ctrl-appscreen"} {
		first := d.Decode(seq, Condition{})
		second := d.Decode(seq, Condition{})
		assert.Equal(t, first, second, seq)
	}
}

func TestDecodeAccumulatesInitial(t *testing.T) {
	initial := Condition{
		KeyCode:      key.CodeHome,
		Modifiers:    key.ModCtrl,
		ModifierMask: key.ModCtrl,
		StateMask:    StateAnsi,
	}

	got := NewDecoder(nil, nil).Decode("shift-newline", initial)
	assert.Equal(t, key.CodeHome, got.KeyCode)
	assert.Equal(t, key.ModCtrl|key.ModShift, got.Modifiers)
	assert.Equal(t, key.ModCtrl|key.ModShift, got.ModifierMask)
	assert.Equal(t, StateAnsi|StateNewLine, got.StateMask)
	assert.Equal(t, NoState, got.State)
}

func TestDecodeDiagnostics(t *testing.T) {
	t.Run("unknown item", func(t *testing.T) {
		sink, diags := CollectDiagnostics()
		got := NewDecoder(nil, sink).Decode("home+bogus-shift", Condition{})

		assert.Equal(t, key.CodeHome, got.KeyCode)
		assert.Equal(t, key.ModShift, got.ModifierMask, "items after an unknown one still decode")
		require.Len(t, *diags, 1)
		assert.Equal(t, DiagUnknownItem, (*diags)[0].Kind)
		assert.Equal(t, "bogus", (*diags)[0].Text)
	})

	t.Run("last key wins", func(t *testing.T) {
		sink, diags := CollectDiagnostics()
		got := NewDecoder(nil, sink).Decode("a+b", Condition{})

		assert.Equal(t, key.Code('B'), got.KeyCode)
		require.Len(t, *diags, 1)
		assert.Equal(t, DiagDuplicateKey, (*diags)[0].Kind)
	})

	t.Run("multi-key resolution keeps first", func(t *testing.T) {
		resolver := key.ResolverFunc(func(name string) []key.Code {
			if name == "combo" {
				return []key.Code{key.CodeUp, key.CodeDown}
			}
			return nil
		})
		sink, diags := CollectDiagnostics()
		got := NewDecoder(resolver, sink).Decode("combo+shift", Condition{})

		assert.Equal(t, key.CodeUp, got.KeyCode)
		assert.Equal(t, key.ModShift, got.Modifiers)
		require.Len(t, *diags, 1)
		assert.Equal(t, DiagExtraKeyCodes, (*diags)[0].Kind)
	})
}

func TestConditionString(t *testing.T) {
	tests := []struct {
		seq  string
		want string
	}{
		{"Home-AnyMod-AppCuKeys", "Home-AppCursorKeys-AnyModifier"},
		{"Up+Shift", "Up+Shift"},
		{"Tab+Shift-Ansi", "Tab+Shift-Ansi"},
		{"Plus+KeyPad+AppKeypad", "Plus+KeyPad+AppKeypad"},
		{"+-Shift", "Plus-Shift"},
		{"PgUp+Shift-AppScreen", "PgUp+Shift-AppScreen"},
		{"Space+Control+Alt-Meta", "Space+Ctrl+Alt-Meta"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DecodeSequence(tt.seq).String(), tt.seq)
	}
}

func TestStateFromName(t *testing.T) {
	assert.Equal(t, StateCursorKeys, StateFromName("appcukeys"))
	assert.Equal(t, StateCursorKeys, StateFromName("appcursorkeys"))
	assert.Equal(t, StateAnsi, StateFromName("ansi"))
	assert.Equal(t, StateNewLine, StateFromName("newline"))
	assert.Equal(t, StateAlternateScreen, StateFromName("appscreen"))
	assert.Equal(t, StateAnyModifier, StateFromName("anymod"))
	assert.Equal(t, StateAnyModifier, StateFromName("anymodifier"))
	assert.Equal(t, StateApplicationKeypad, StateFromName("appkeypad"))
	assert.Equal(t, NoState, StateFromName("shift"))
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		want Command
		ok   bool
	}{
		{"erase", EraseCommand, true},
		{"scrollPageUp", ScrollPageUpCommand, true},
		{"scrollpagedown", ScrollPageDownCommand, true},
		{"scrollLineUp", ScrollLineUpCommand, true},
		{"SCROLLLINEUP", ScrollLineUpCommand, true},
		{"scrollLineDown", ScrollLineDownCommand, true},
		{"scrollUpToTop", ScrollUpToTopCommand, true},
		{"scrollDownToBottom", ScrollDownToBottomCommand, true},
		{"scrollPromptUp", ScrollPromptUpCommand, true},
		{"scrollPromptDown", ScrollPromptDownCommand, true},
		{"", NoCommand, false},
		{"scroll", NoCommand, false},
	}

	for _, tt := range tests {
		got, ok := ParseCommand(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	assert.Equal(t, "scrollLineUp", ScrollLineUpCommand.String())
	assert.Equal(t, "", NoCommand.String())
}
