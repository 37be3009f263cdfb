package keytab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripComment(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"", ""},
		{"# just a comment", ""},
		{`key Up : "\EA" # trailing`, `key Up : "\EA" `},
		{`key X : "a#b"`, `key X : "a#b"`},
		{`key X : "a#b" # c`, `key X : "a#b" `},
		{`key X : "#" # "#"`, `key X : "#" `},
		{`key X : scrollLineUp#comment`, `key X : scrollLineUp`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stripComment(tt.line), "stripComment(%q)", tt.line)
	}
}

func TestSimplify(t *testing.T) {
	assert.Equal(t, "", simplify(" \t\r\n"))
	assert.Equal(t, "key Up : scrollLineUp", simplify("  key   Up\t:  scrollLineUp \r\n"))
}

func TestTokenizeTitle(t *testing.T) {
	tokens := Tokenize(`keyboard "Default (XFree 4)"`, nil)
	assert.Equal(t, []Token{
		{Kind: TitleKeyword},
		{Kind: TitleText, Text: "Default (XFree 4)"},
	}, tokens)

	tokens = Tokenize(`  keyboard   "Spaced   Title"   # comment`, nil)
	require.Len(t, tokens, 2)
	assert.Equal(t, "Spaced Title", tokens[1].Text)

	assert.Empty(t, Tokenize(`keyboard ""`, nil))
	assert.Empty(t, Tokenize(`keyboard`, nil))
}

func TestTokenizeKeyLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Token
	}{
		{
			name: "output text",
			line: `key Home-AnyMod-AppCuKeys : "\E[H"`,
			want: []Token{
				{Kind: KeyKeyword},
				{Kind: KeySequence, Text: "Home-AnyMod-AppCuKeys"},
				{Kind: OutputText, Text: `\E[H`},
			},
		},
		{
			name: "spaces removed from sequence",
			line: `key Home   -AnyMod  -AppCuKeys  :  "\E[H"`,
			want: []Token{
				{Kind: KeyKeyword},
				{Kind: KeySequence, Text: "Home-AnyMod-AppCuKeys"},
				{Kind: OutputText, Text: `\E[H`},
			},
		},
		{
			name: "command",
			line: `key Up+Shift : scrollLineUp`,
			want: []Token{
				{Kind: KeyKeyword},
				{Kind: KeySequence, Text: "Up+Shift"},
				{Kind: CommandToken, Text: "scrollLineUp"},
			},
		},
		{
			name: "hash inside quotes",
			line: `key NumberSign : "#" # comment`,
			want: []Token{
				{Kind: KeyKeyword},
				{Kind: KeySequence, Text: "NumberSign"},
				{Kind: OutputText, Text: "#"},
			},
		},
		{
			name: "empty quotes fall through to command",
			line: `key Tab : ""`,
			want: []Token{
				{Kind: KeyKeyword},
				{Kind: KeySequence, Text: "Tab"},
				{Kind: CommandToken, Text: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.line, nil))
		})
	}
}

func TestTokenizeUnparseable(t *testing.T) {
	sink, diags := CollectDiagnostics()

	assert.Empty(t, Tokenize("", sink))
	assert.Empty(t, Tokenize("   \t ", sink))
	assert.Empty(t, Tokenize("# comment only", sink))
	assert.Empty(t, *diags, "blank and comment lines are not diagnosed")

	assert.Empty(t, Tokenize("this line is not understood", sink))
	assert.Empty(t, Tokenize("key Up scrollLineUp", sink))
	require.Len(t, *diags, 2)
	assert.Equal(t, DiagUnparseableLine, (*diags)[0].Kind)
	assert.Equal(t, "this line is not understood", (*diags)[0].Text)
}

func TestTokenKindString(t *testing.T) {
	assert.Equal(t, "TitleKeyword", TitleKeyword.String())
	assert.Equal(t, "CommandToken", CommandToken.String())
	assert.Equal(t, "Unknown", TokenKind(42).String())
}
