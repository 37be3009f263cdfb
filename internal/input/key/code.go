package key

import (
	"fmt"
	"unicode"
)

// Code identifies a key in the translator key-code space.
// Printable keys use their (upper-cased) code point; named keys
// are at 0x01000000 and above.
type Code int32

// CodeUnknown is the zero value and means no key was recognized.
const CodeUnknown Code = 0

// Named keys.
const (
	CodeEscape    Code = 0x01000000
	CodeTab       Code = 0x01000001
	CodeBacktab   Code = 0x01000002
	CodeBackspace Code = 0x01000003
	CodeReturn    Code = 0x01000004
	CodeEnter     Code = 0x01000005
	CodeInsert    Code = 0x01000006
	CodeDelete    Code = 0x01000007
	CodePause     Code = 0x01000008
	CodePrint     Code = 0x01000009
	CodeSysReq    Code = 0x0100000a
	CodeClear     Code = 0x0100000b

	// Navigation
	CodeHome     Code = 0x01000010
	CodeEnd      Code = 0x01000011
	CodeLeft     Code = 0x01000012
	CodeUp       Code = 0x01000013
	CodeRight    Code = 0x01000014
	CodeDown     Code = 0x01000015
	CodePageUp   Code = 0x01000016
	CodePageDown Code = 0x01000017

	// Lock keys
	CodeCapsLock   Code = 0x01000024
	CodeNumLock    Code = 0x01000025
	CodeScrollLock Code = 0x01000026

	// Function keys F1 through F35 are contiguous.
	CodeF1  Code = 0x01000030
	CodeF35 Code = CodeF1 + 34

	CodeMenu Code = 0x01000055
	CodeHelp Code = 0x01000058

	// CodeSpace is the code point of the space bar.
	CodeSpace Code = ' '
)

// FunctionKey returns the code for Fn, or CodeUnknown when n is out of range.
func FunctionKey(n int) Code {
	if n < 1 || n > 35 {
		return CodeUnknown
	}
	return CodeF1 + Code(n-1)
}

// IsNamed returns true if c is a non-printable named key.
func (c Code) IsNamed() bool {
	return c >= CodeEscape
}

// IsFunctionKey returns true if c is one of F1-F35.
func (c Code) IsFunctionKey() bool {
	return c >= CodeF1 && c <= CodeF35
}

// IsPrintable returns true if c is a printable character key.
func (c Code) IsPrintable() bool {
	return c > 0 && c < CodeEscape && unicode.IsPrint(rune(c))
}

// Rune returns the character of a printable key, or 0.
func (c Code) Rune() rune {
	if !c.IsPrintable() {
		return 0
	}
	return rune(c)
}

// String returns the canonical key name, as used when writing translators.
// Punctuation is written by name ("Plus", "Colon") so the result never
// collides with sequence separators, comments, or the result delimiter.
// Codes without a name, such as those from a custom resolver, are written
// as "Unknown".
func (c Code) String() string {
	if c == CodeUnknown {
		return "Unknown"
	}
	if c.IsFunctionKey() {
		return fmt.Sprintf("F%d", int(c-CodeF1)+1)
	}
	if name, ok := codeNames[c]; ok {
		return name
	}
	if c.IsPrintable() {
		return string(rune(c))
	}
	return "Unknown"
}

// FromRune returns the code for a printable character.
func FromRune(r rune) Code {
	if !unicode.IsPrint(r) {
		return CodeUnknown
	}
	return Code(unicode.ToUpper(r))
}

// codeNames holds the canonical written name of named and punctuation keys.
var codeNames = map[Code]string{
	CodeEscape:     "Esc",
	CodeTab:        "Tab",
	CodeBacktab:    "Backtab",
	CodeBackspace:  "Backspace",
	CodeReturn:     "Return",
	CodeEnter:      "Enter",
	CodeInsert:     "Ins",
	CodeDelete:     "Del",
	CodePause:      "Pause",
	CodePrint:      "Print",
	CodeSysReq:     "SysReq",
	CodeClear:      "Clear",
	CodeHome:       "Home",
	CodeEnd:        "End",
	CodeLeft:       "Left",
	CodeUp:         "Up",
	CodeRight:      "Right",
	CodeDown:       "Down",
	CodePageUp:     "PgUp",
	CodePageDown:   "PgDown",
	CodeCapsLock:   "CapsLock",
	CodeNumLock:    "NumLock",
	CodeScrollLock: "ScrollLock",
	CodeMenu:       "Menu",
	CodeHelp:       "Help",
	CodeSpace:      "Space",
	'!':            "Exclam",
	'"':            "QuoteDbl",
	'#':            "NumberSign",
	'$':            "Dollar",
	'%':            "Percent",
	'&':            "Ampersand",
	'\'':           "Apostrophe",
	'(':            "ParenLeft",
	')':            "ParenRight",
	'*':            "Asterisk",
	'+':            "Plus",
	',':            "Comma",
	'-':            "Minus",
	'.':            "Period",
	'/':            "Slash",
	':':            "Colon",
	';':            "Semicolon",
	'<':            "Less",
	'=':            "Equal",
	'>':            "Greater",
	'?':            "Question",
	'@':            "At",
	'[':            "BracketLeft",
	'\\':           "Backslash",
	']':            "BracketRight",
	'^':            "AsciiCircum",
	'_':            "Underscore",
	'`':            "QuoteLeft",
	'{':            "BraceLeft",
	'|':            "Bar",
	'}':            "BraceRight",
	'~':            "AsciiTilde",
}
