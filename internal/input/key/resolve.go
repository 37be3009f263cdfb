package key

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Resolver maps a textual key name to key codes.
//
// Resolve returns nil when the name is not a key. A name that describes
// several keys in a row (e.g. "a,b") resolves to one code per key.
type Resolver interface {
	Resolve(name string) []Code
}

// ResolverFunc adapts an ordinary function to the Resolver interface.
type ResolverFunc func(name string) []Code

// Resolve calls f(name).
func (f ResolverFunc) Resolve(name string) []Code {
	return f(name)
}

// nameResolver resolves names against the built-in tables.
type nameResolver struct{}

// DefaultResolver returns the built-in case-insensitive key-name resolver.
//
// Supported names:
//   - Named keys: "Esc", "Escape", "Return", "Enter", "PgUp", "Prior", "F12", ...
//   - Punctuation names: "Plus", "Minus", "Colon", "BracketLeft", ...
//   - Any single printable character: "a", "@", "+"
//   - Comma-separated lists of the above: "a,b"
func DefaultResolver() Resolver {
	return nameResolver{}
}

// Resolve implements Resolver.
func (nameResolver) Resolve(name string) []Code {
	if name == "" {
		return nil
	}

	// A lone comma is the comma key, anything else with a comma is a list.
	if name != "," && strings.Contains(name, ",") {
		var codes []Code
		for _, part := range strings.Split(name, ",") {
			code := resolveOne(strings.TrimSpace(part))
			if code == CodeUnknown {
				return nil
			}
			codes = append(codes, code)
		}
		return codes
	}

	if code := resolveOne(name); code != CodeUnknown {
		return []Code{code}
	}
	return nil
}

// CodeFromName resolves a single key name, returning CodeUnknown when the
// name is not recognized.
func CodeFromName(name string) Code {
	return resolveOne(strings.TrimSpace(name))
}

func resolveOne(name string) Code {
	if name == "" {
		return CodeUnknown
	}

	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return FromRune(r)
	}

	lower := strings.ToLower(name)
	if code, ok := nameMap[lower]; ok {
		return code
	}

	if lower[0] == 'f' {
		if n, err := strconv.Atoi(lower[1:]); err == nil {
			return FunctionKey(n)
		}
	}

	return CodeUnknown
}

// nameMap maps key names (lowercase) to codes.
var nameMap = func() map[string]Code {
	m := map[string]Code{
		"escape":   CodeEscape,
		"prior":    CodePageUp,
		"pageup":   CodePageUp,
		"next":     CodePageDown,
		"pagedown": CodePageDown,
		"pgdn":     CodePageDown,
		"insert":   CodeInsert,
		"delete":   CodeDelete,
		"bs":       CodeBackspace,
		"cr":       CodeReturn,
	}
	// Every canonical name is also accepted.
	for code, name := range codeNames {
		m[strings.ToLower(name)] = code
	}
	return m
}()
