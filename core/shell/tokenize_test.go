package shell

import (
	"testing"

	shlex "github.com/anmitsu/go-shlex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func words(tokens []Token) []string {
	var out []string
	for _, tok := range tokens {
		if tok.Kind == KindWord {
			out = append(out, tok.Raw)
		}
	}
	return out
}

// A lone & must be consumed as its own token; before it had a kind the
// tokenizer looped forever on inputs like "sleep 1 &".
func TestTokenizeBareAmpersand(t *testing.T) {
	toks := Tokenize("sleep 1 &")
	assert.Equal(t, []Kind{KindWord, KindWord, KindAmp, KindEOF}, kinds(toks))

	toks = Tokenize("a&b")
	assert.Equal(t, []Kind{KindWord, KindAmp, KindWord, KindEOF}, kinds(toks))
	assert.Equal(t, []string{"a", "b"}, words(toks))

	toks = Tokenize("&")
	assert.Equal(t, []Kind{KindAmp, KindEOF}, kinds(toks))

	// && still wins over two single ampersands.
	toks = Tokenize("a && b")
	assert.Equal(t, []Kind{KindWord, KindAnd, KindWord, KindEOF}, kinds(toks))
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		input string
		kinds []Kind
		raws  []string
	}{
		{
			input: "ls -la /tmp",
			kinds: []Kind{KindWord, KindWord, KindWord, KindEOF},
			raws:  []string{"ls", "-la", "/tmp", ""},
		},
		{
			input: "a&&b",
			kinds: []Kind{KindWord, KindAnd, KindWord, KindEOF},
			raws:  []string{"a", "&&", "b", ""},
		},
		{
			input: "a && b||c",
			kinds: []Kind{KindWord, KindAnd, KindWord, KindOr, KindWord, KindEOF},
			raws:  []string{"a", "&&", "b", "||", "c", ""},
		},
		{
			input: "a | b ; c",
			kinds: []Kind{KindWord, KindPipe, KindWord, KindSemi, KindWord, KindEOF},
			raws:  []string{"a", "|", "b", ";", "c", ""},
		},
		{
			input: "(a;b)",
			kinds: []Kind{KindLParen, KindWord, KindSemi, KindWord, KindRParen, KindEOF},
			raws:  []string{"(", "a", ";", "b", ")", ""},
		},
		{
			input: "sort < in > out",
			kinds: []Kind{KindWord, KindRedirIn, KindWord, KindRedirOut, KindWord, KindEOF},
			raws:  []string{"sort", "<", "in", ">", "out", ""},
		},
		{
			input: "log >> app.log",
			kinds: []Kind{KindWord, KindRedirAppend, KindWord, KindEOF},
			raws:  []string{"log", ">>", "app.log", ""},
		},
		{
			input: "",
			kinds: []Kind{KindEOF},
			raws:  []string{""},
		},
		{
			input: "   ",
			kinds: []Kind{KindEOF},
			raws:  []string{""},
		},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			tokens := Tokenize(tc.input)
			require.Equal(t, tc.kinds, kinds(tokens))

			raws := make([]string, len(tokens))
			for i, tok := range tokens {
				raws[i] = tok.Raw
			}
			assert.Equal(t, tc.raws, raws)
		})
	}
}

func TestTokenizeQuotes(t *testing.T) {
	cases := []struct {
		input string
		words []string
	}{
		// Words keep their quotes; the parser strips them.
		{`echo "hello world"`, []string{"echo", `"hello world"`}},
		{`echo 'a b' c`, []string{"echo", "'a b'", "c"}},
		// Operators inside a quote region are literal.
		{`echo "a && b | c"`, []string{"echo", `"a && b | c"`}},
		// Escaped quote inside a region does not close it.
		{`echo "a\"b"`, []string{"echo", `"a\"b"`}},
		// A backslash keeps itself and the next byte.
		{`echo a\ b`, []string{"echo", `a\ b`}},
		// Unterminated quotes degrade to a best-effort word.
		{`echo 'abc`, []string{"echo", "'abc"}},
		{`echo "abc`, []string{"echo", `"abc`}},
		// Adjacent quoted segments stay one word.
		{`echo 'a'\''b'`, []string{"echo", `'a'\''b'`}},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.words, words(Tokenize(tc.input)))
		})
	}
}

func TestTokenizeOffsets(t *testing.T) {
	tokens := Tokenize("  foo bar")
	require.Len(t, tokens, 3)

	assert.Equal(t, Token{KindWord, "foo", 2, 5}, tokens[0])
	assert.Equal(t, Token{KindWord, "bar", 6, 9}, tokens[1])
	assert.Equal(t, Token{KindEOF, "", 9, 9}, tokens[2])
}

// TestTokenizeAgainstShlex cross-checks plain word splitting against an
// independent lexer. Inputs are restricted to the syntax both
// implementations treat identically: whitespace-separated bare words.
func TestTokenizeAgainstShlex(t *testing.T) {
	inputs := []string{
		"ls -la /tmp",
		"echo hello   world",
		"foo --bar=baz qux",
		"git commit -m message",
		"  leading and trailing  ",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			expected, err := shlex.Split(input, true)
			require.NoError(t, err)

			assert.Equal(t, expected, words(Tokenize(input)))
		})
	}
}
