package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModifierValues(t *testing.T) {
	assert.Equal(t, Modifier(1), ModShift)
	assert.Equal(t, Modifier(2), ModCtrl)
	assert.Equal(t, Modifier(4), ModAlt)
	assert.Equal(t, Modifier(8), ModMeta)
	assert.Equal(t, Modifier(16), ModKeypad)
}

func TestModifierHas(t *testing.T) {
	tests := []struct {
		mod    Modifier
		check  Modifier
		expect bool
	}{
		{ModNone, ModCtrl, false},
		{ModCtrl, ModCtrl, true},
		{ModCtrl | ModAlt, ModCtrl, true},
		{ModCtrl | ModAlt, ModAlt, true},
		{ModCtrl | ModAlt, ModShift, false},
		{ModCtrl | ModAlt | ModShift | ModMeta | ModKeypad, ModKeypad, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, tt.mod.Has(tt.check), "Modifier(%d).Has(%d)", tt.mod, tt.check)
	}
}

func TestModifierWithWithout(t *testing.T) {
	mod := ModNone.With(ModCtrl).With(ModAlt)
	assert.True(t, mod.Has(ModCtrl))
	assert.True(t, mod.Has(ModAlt))

	mod = mod.Without(ModAlt)
	assert.False(t, mod.Has(ModAlt))
	assert.True(t, mod.Has(ModCtrl))
	assert.False(t, mod.IsEmpty())
	assert.True(t, mod.Without(ModCtrl).IsEmpty())
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModKeypad, "KeyPad"},
		{ModShift | ModCtrl, "Shift+Ctrl"},
		{ModMeta | ModAlt | ModShift, "Shift+Alt+Meta"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.mod.String())
	}
}

func TestModifierFromName(t *testing.T) {
	tests := []struct {
		name string
		want Modifier
	}{
		{"shift", ModShift},
		{"ctrl", ModCtrl},
		{"control", ModCtrl},
		{"alt", ModAlt},
		{"meta", ModMeta},
		{"keypad", ModKeypad},
		{"Shift", ModNone},
		{"cmd", ModNone},
		{"", ModNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ModifierFromName(tt.name), "ModifierFromName(%q)", tt.name)
	}
}
