package keytab

import (
	"strings"
	"unicode"

	"github.com/dshills/keytab/internal/input/key"
)

// Condition is the decoded form of a key sequence expression.
type Condition struct {
	// KeyCode is the key, or key.CodeUnknown.
	KeyCode key.Code

	// Modifiers marks which mentioned modifiers must be present.
	Modifiers key.Modifier

	// ModifierMask marks which modifiers were mentioned.
	ModifierMask key.Modifier

	// State marks which mentioned state flags must be set.
	State State

	// StateMask marks which state flags were mentioned.
	StateMask State
}

// String returns the condition in translator syntax, e.g.
// "Home-AnyModifier-AppCursorKeys".
func (c Condition) String() string {
	var b strings.Builder
	b.WriteString(c.KeyCode.String())

	for _, mod := range key.AllModifiers {
		if !c.ModifierMask.Has(mod) {
			continue
		}
		b.WriteByte(polarity(c.Modifiers.Has(mod)))
		b.WriteString(mod.Name())
	}

	for _, flag := range AllStates {
		if !c.StateMask.Has(flag) {
			continue
		}
		b.WriteByte(polarity(c.State.Has(flag)))
		b.WriteString(flag.Name())
	}

	return b.String()
}

func polarity(wanted bool) byte {
	if wanted {
		return '+'
	}
	return '-'
}

// decodeState is the state of the sequence scanner.
type decodeState int

const (
	// expectingItem: the item buffer is empty.
	expectingItem decodeState = iota
	// accumulatingItem: the item buffer holds part of an item.
	accumulatingItem
)

// Decoder decodes key sequence expressions into conditions.
type Decoder struct {
	resolver key.Resolver
	sink     DiagnosticSink
}

// NewDecoder creates a decoder. A nil resolver selects key.DefaultResolver.
func NewDecoder(resolver key.Resolver, sink DiagnosticSink) *Decoder {
	if resolver == nil {
		resolver = key.DefaultResolver()
	}
	return &Decoder{resolver: resolver, sink: sink}
}

// DecodeSequence decodes a sequence with the default resolver, starting from
// an empty condition and discarding diagnostics.
func DecodeSequence(sequence string) Condition {
	return NewDecoder(nil, nil).Decode(sequence, Condition{})
}

// Decode decodes a key sequence expression, accumulating into initial.
// It never fails: unrecognized items are reported to the sink and skipped.
// Names are matched case-insensitively.
//
// Items are classified when they end. An item is wanted (required present)
// unless the separator before it was '-'; the first item is always wanted.
func (d *Decoder) Decode(sequence string, initial Condition) Condition {
	cond := initial
	runes := []rune(strings.ToLower(sequence))

	state := expectingItem
	wanted := true
	keySeen := false
	item := make([]rune, 0, len(runes))

	for i, ch := range runes {
		boundary := true
		switch {
		case unicode.IsLetter(ch) || unicode.IsNumber(ch):
			item = append(item, ch)
			state = accumulatingItem
			boundary = false
		case i == 0:
			// A leading separator is the key itself, e.g. "+" or "-".
			item = append(item, ch)
			state = accumulatingItem
		}

		if state == accumulatingItem && (boundary || i == len(runes)-1) {
			d.classify(string(item), wanted, &cond, &keySeen)
			item = item[:0]
			state = expectingItem
		}

		// The polarity applies to the next item.
		switch ch {
		case '+':
			wanted = true
		case '-':
			wanted = false
		}
	}

	return cond
}

func (d *Decoder) classify(item string, wanted bool, cond *Condition, keySeen *bool) {
	if mod := key.ModifierFromName(item); mod != key.ModNone {
		cond.ModifierMask |= mod
		if wanted {
			cond.Modifiers |= mod
		}
		return
	}

	if flag := StateFromName(item); flag != NoState {
		cond.StateMask |= flag
		if wanted {
			cond.State |= flag
		}
		return
	}

	if codes := d.resolver.Resolve(item); len(codes) > 0 {
		if len(codes) > 1 {
			d.sink.emit(DiagExtraKeyCodes, item, "unhandled key codes in sequence")
		}
		if *keySeen {
			d.sink.emit(DiagDuplicateKey, item, "key sequence names more than one key; last one wins")
		}
		cond.KeyCode = codes[0]
		*keySeen = true
		return
	}

	d.sink.emit(DiagUnknownItem, item, "unable to parse key binding item")
}
