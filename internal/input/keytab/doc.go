// Package keytab reads keyboard translator files.
//
// A keyboard translator maps key presses, qualified by keyboard modifiers and
// terminal state flags, to either literal output bytes or a named terminal
// command. The file format is line oriented:
//
//	keyboard "Default (XFree 4)"
//
//	# comment
//	key Home -AnyMod-AppCuKeys : "\E[H"
//	key Up+Shift               : scrollLineUp
//
// # Key Concepts
//
// Token: A classified fragment of one line (see Tokenize).
//
// Condition: A key code plus value/mask pairs for modifiers and state flags.
// A bit set in a mask means the modifier or flag was mentioned; the matching
// value bit says whether it must be present (+) or absent (-). Bits absent from
// the mask are "don't care".
//
// Entry: One decoded key line: a Condition and either output text or a Command.
//
// Reader: Pulls entries from a line source with one entry of lookahead.
//
// # Key Sequences
//
// The sequence before the colon is decoded in a single left-to-right scan.
// Runs of letters and digits form items; any other character ends an item.
// A leading punctuation character is itself an item, so "+" or "-" may name
// a key. Each item is classified as a modifier, a state flag, or a key name:
//
//	Home-AnyMod-AppCuKeys   key Home, AnyModifier and AppCursorKeys absent
//	Up+Shift                key Up, Shift present
//	+-Shift                 key Plus, Shift absent
//
// # Diagnostics
//
// Parsing is best effort and line granular. Malformed lines, unknown items and
// unknown commands never fail the read; they are reported to an optional
// DiagnosticSink instead.
//
// # Usage
//
//	r := keytab.NewReader(f, keytab.WithDiagnostics(sink))
//	fmt.Println(r.Description())
//	for r.HasNextEntry() {
//	    entry := r.NextEntry()
//	    // use entry
//	}
package keytab
