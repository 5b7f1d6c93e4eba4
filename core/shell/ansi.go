package shell

import (
	"regexp"
	"strings"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[mGKHFJ]`)

// StripANSI removes ANSI escape sequences (colors, cursor movement)
// from text, keeping the text content.
func StripANSI(text string) string {
	return ansiEscape.ReplaceAllString(text, "")
}

// StripControl removes control characters except newline, carriage
// return and tab.
func StripControl(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			sb.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			// dropped
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// StripAll removes both ANSI sequences and control characters.
func StripAll(text string) string {
	return StripControl(StripANSI(text))
}
