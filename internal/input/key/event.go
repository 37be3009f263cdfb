package key

import (
	"github.com/gdamore/tcell/v2"
)

// Event represents a single key press in translator terms.
type Event struct {
	// Code identifies the key pressed.
	Code Code

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// String returns a representation like "Ctrl+A" or "PgUp".
func (e Event) String() string {
	if e.Modifiers.IsEmpty() {
		return e.Code.String()
	}
	return e.Modifiers.String() + "+" + e.Code.String()
}

// FromTcell converts a tcell key event to a key code and modifiers.
// Unknown keys convert to CodeUnknown.
func FromTcell(ev *tcell.EventKey) (Code, Modifier) {
	if ev == nil {
		return CodeUnknown, ModNone
	}

	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	switch {
	case k == tcell.KeyRune:
		return FromRune(ev.Rune()), mods
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return Code('A' + rune(k-tcell.KeyCtrlA)), mods | ModCtrl
	case k == tcell.KeyCtrlSpace:
		return CodeSpace, mods | ModCtrl
	}

	if code, ok := tcellKeys[k]; ok {
		return code, mods
	}

	// Legacy control codes other than the aliased BS/TAB/CR/ESC.
	if k > tcell.KeyNUL && k < tcell.KeyESC {
		return Code('@' + rune(k)), mods | ModCtrl
	}

	return CodeUnknown, mods
}

// EventFromTcell converts a tcell key event to an Event.
func EventFromTcell(ev *tcell.EventKey) Event {
	code, mods := FromTcell(ev)
	return Event{Code: code, Modifiers: mods}
}

// convertMod converts tcell modifiers to our Modifier type.
func convertMod(m tcell.ModMask) Modifier {
	var mods Modifier
	if m&tcell.ModShift != 0 {
		mods |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= ModMeta
	}
	return mods
}

var tcellKeys = func() map[tcell.Key]Code {
	m := map[tcell.Key]Code{
		tcell.KeyEscape:     CodeEscape,
		tcell.KeyEnter:      CodeReturn,
		tcell.KeyTab:        CodeTab,
		tcell.KeyBacktab:    CodeBacktab,
		tcell.KeyBackspace:  CodeBackspace,
		tcell.KeyBackspace2: CodeBackspace,
		tcell.KeyDelete:     CodeDelete,
		tcell.KeyInsert:     CodeInsert,
		tcell.KeyHome:       CodeHome,
		tcell.KeyEnd:        CodeEnd,
		tcell.KeyPgUp:       CodePageUp,
		tcell.KeyPgDn:       CodePageDown,
		tcell.KeyUp:         CodeUp,
		tcell.KeyDown:       CodeDown,
		tcell.KeyLeft:       CodeLeft,
		tcell.KeyRight:      CodeRight,
		tcell.KeyPause:      CodePause,
		tcell.KeyPrint:      CodePrint,
		tcell.KeyClear:      CodeClear,
		tcell.KeyHelp:       CodeHelp,
		tcell.KeyMenu:       CodeMenu,
		tcell.KeyCapsLock:   CodeCapsLock,
		tcell.KeyNumLock:    CodeNumLock,
		tcell.KeyScrollLock: CodeScrollLock,
	}
	for i := 0; i < 35; i++ {
		m[tcell.KeyF1+tcell.Key(i)] = CodeF1 + Code(i)
	}
	return m
}()
