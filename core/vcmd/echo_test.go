package vcmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEcho(t *testing.T) {
	cases := []struct {
		name     string
		args     []string
		expected string
	}{
		{"plain", []string{"hello", "world"}, "hello world\n"},
		{"empty", nil, "\n"},
		{"no newline", []string{"-n", "hi"}, "hi"},
		{"escapes off by default", []string{`a\nb`}, `a\nb` + "\n"},
		{"escapes on", []string{"-e", `a\nb`}, "a\nb\n"},
		{"escapes disabled again", []string{"-e", "-E", `a\tb`}, `a\tb` + "\n"},
		{"combined flags", []string{"-ne", `x\ty`}, "x\ty"},
		{"non-flag dash word", []string{"-x", "y"}, "-x y\n"},
		{"flags after words are literal", []string{"a", "-n"}, "a -n\n"},
		{"backslash escape", []string{"-e", `a\\nb`}, `a\nb` + "\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Echo(testContext(tc.args...))
			assert.Equal(t, 0, res.Code)
			assert.Equal(t, tc.expected, res.Stdout)
		})
	}
}

func TestEchoFlagWord(t *testing.T) {
	assert.True(t, echoFlagWord("-n"))
	assert.True(t, echoFlagWord("-neE"))
	assert.False(t, echoFlagWord("-"))
	assert.False(t, echoFlagWord("-x"))
	assert.False(t, echoFlagWord("n"))
}

func TestEchoLongLine(t *testing.T) {
	long := strings.Repeat("a", 4096)
	res := Echo(testContext(long))
	assert.Equal(t, long+"\n", res.Stdout)
}
