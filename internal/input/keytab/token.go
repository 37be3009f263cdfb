package keytab

import (
	"regexp"
	"strings"
)

// TokenKind identifies the role of a token within a line.
type TokenKind int

const (
	// TitleKeyword is the "keyboard" keyword of a title line.
	TitleKeyword TokenKind = iota
	// TitleText is the description following the title keyword.
	TitleText
	// KeyKeyword is the "key" keyword of a key line.
	KeyKeyword
	// KeySequence is the key sequence expression with spaces removed.
	KeySequence
	// OutputText is the text between the quotes of a key line result.
	OutputText
	// CommandToken is the bare word of a key line result.
	CommandToken
)

// String returns the token kind name.
func (k TokenKind) String() string {
	switch k {
	case TitleKeyword:
		return "TitleKeyword"
	case TitleText:
		return "TitleText"
	case KeyKeyword:
		return "KeyKeyword"
	case KeySequence:
		return "KeySequence"
	case OutputText:
		return "OutputText"
	case CommandToken:
		return "CommandToken"
	default:
		return "Unknown"
	}
}

// Token is a classified fragment of one line.
type Token struct {
	Kind TokenKind
	Text string
}

const titlePrefix = "keyboard"

// keyLinePattern matches e.g.
//
//	key Enter-NewLine                 : "\r"
//	key Home        -AnyMod-AppCuKeys : "\E[H"
//	key Up+Shift                      : scrollLineUp
var keyLinePattern = regexp.MustCompile(`key\s+(.+?)\s*:\s*("(.*)"|\w+)`)

// Tokenize splits one line into tokens. It never fails: blank, comment-only
// and unparseable lines yield no tokens. Title lines yield
// [TitleKeyword, TitleText]; key lines yield
// [KeyKeyword, KeySequence, OutputText|CommandToken].
func Tokenize(line string, sink DiagnosticSink) []Token {
	text := simplify(stripComment(line))
	if text == "" {
		return nil
	}

	if strings.HasPrefix(text, titlePrefix) {
		title := simplify(strings.ReplaceAll(text[len(titlePrefix):], `"`, ""))
		if title == "" {
			return nil
		}
		return []Token{
			{Kind: TitleKeyword},
			{Kind: TitleText, Text: title},
		}
	}

	m := keyLinePattern.FindStringSubmatch(text)
	if m == nil {
		sink.emit(DiagUnparseableLine, text, "line in keyboard translator could not be parsed")
		return nil
	}

	tokens := []Token{
		{Kind: KeyKeyword},
		{Kind: KeySequence, Text: strings.ReplaceAll(m[1], " ", "")},
	}

	if m[3] != "" {
		return append(tokens, Token{Kind: OutputText, Text: m[3]})
	}

	// An empty quoted result ("") falls through to the command branch with
	// an empty word.
	word := m[2]
	if strings.HasPrefix(word, `"`) {
		word = ""
	}
	return append(tokens, Token{Kind: CommandToken, Text: word})
}

// stripComment removes everything from the first '#' that is outside a
// quoted string. Quote parity is tracked from the end of the line.
func stripComment(line string) string {
	inQuotes := false
	pos := -1
	for i := len(line) - 1; i >= 0; i-- {
		switch line[i] {
		case '"':
			inQuotes = !inQuotes
		case '#':
			if !inQuotes {
				pos = i
			}
		}
	}
	if pos >= 0 {
		return line[:pos]
	}
	return line
}

// simplify collapses whitespace runs into single spaces and trims both ends.
func simplify(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
