package shell

import (
	"regexp"
	"strings"
)

// safePattern matches strings that survive tokenization as a single
// word with no quoting at all.
var safePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-./=,+@:]+$`)

// Quote makes a value safe for interpolation into a command string so
// the tokenizer reconstructs it as exactly one word.
//
//	Quote("")            == "''"
//	Quote("hello")       == "hello"
//	Quote("hello world") == "'hello world'"
//	Quote("it's")        == `'it'\''s'`
func Quote(value string) string {
	if value == "" {
		return "''"
	}

	// Already single-quoted with no embedded quote: use as-is.
	if len(value) >= 2 && strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'") {
		if !strings.Contains(value[1:len(value)-1], "'") {
			return value
		}
	}

	// Double-quoted strings are wrapped whole so their content stays
	// literal.
	if len(value) > 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return "'" + value + "'"
	}

	if safePattern.MatchString(value) {
		return value
	}

	// '\'' closes the quote, emits an escaped quote, and reopens.
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

// QuoteAll quotes each value and joins them with spaces.
func QuoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = Quote(v)
	}
	return strings.Join(quoted, " ")
}

// NeedsQuoting reports whether a value would be re-split or
// re-interpreted if interpolated unquoted.
func NeedsQuoting(value string) bool {
	return value == "" || !safePattern.MatchString(value)
}
