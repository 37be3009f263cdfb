// Package key provides the key-code space and key-name tables used by
// keyboard translators.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Code: Identifies a key (named keys like Home or F5, or printable characters)
//   - Modifier: Represents modifier keys (Shift, Ctrl, Alt, Meta, KeyPad)
//   - Event: A single key press converted from a terminal backend
//   - Resolver: Maps a textual key name to one or more codes
//
// # Key Codes
//
// Printable keys use their Unicode code point, with letters folded to upper
// case, so "a" and "A" both resolve to the code 'A'. Named keys use values
// at 0x01000000 and above:
//
//	key.CodeHome.String()          // "Home"
//	key.DefaultResolver().Resolve("pgdown") // []Code{CodePageDown}
//
// The zero Code is CodeUnknown.
package key
