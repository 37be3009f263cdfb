package keytab

import (
	"fmt"
	"strings"
)

// Unescape converts translator escape sequences in output text to bytes:
// \E (ESC), \b, \f, \t, \r, \n and \xHH with up to two hex digits.
// Unknown escapes are kept verbatim.
func Unescape(text string) []byte {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch != '\\' || i+1 >= len(text) {
			out = append(out, ch)
			continue
		}

		switch text[i+1] {
		case 'E':
			out = append(out, 0x1b)
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		case 'n':
			out = append(out, '\n')
		case 'x':
			j := i + 2
			var value byte
			for j < len(text) && j < i+4 && isHexDigit(text[j]) {
				value = value<<4 | hexValue(text[j])
				j++
			}
			out = append(out, value)
			i = j - 1
			continue
		default:
			out = append(out, ch)
			continue
		}
		i++
	}
	return out
}

// Escape is the inverse of Unescape. Backslashes and double quotes are
// written as hex escapes so the result is safe inside a quoted result.
func Escape(text []byte) string {
	var b strings.Builder
	for _, ch := range text {
		switch ch {
		case 0x1b:
			b.WriteString(`\E`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		default:
			if ch < 0x20 || ch == 0x7f || ch == '\\' || ch == '"' {
				fmt.Fprintf(&b, `\x%02x`, ch)
			} else {
				b.WriteByte(ch)
			}
		}
	}
	return b.String()
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
