package shell

import "strings"

// realShellMarkers are constructs the engine does not implement. Any
// occurrence forces the whole command string to an OS shell; there is
// no partial native execution.
var realShellMarkers = []string{
	"`",   // command substitution
	"$(",  // command substitution
	"${",  // variable expansion
	"~",   // home expansion
	"*",   // glob
	"?",   // glob
	"[",   // glob
	"2>",  // fd-specific redirection
	"&>",  // combined redirection
	">&",  // fd duplication
	"<<",  // here-doc
	"<<<", // here-string
}

// NeedsRealShell reports whether the command uses syntax outside the
// engine's subset. The scan is a plain substring check, not
// token-aware: a marker inside quotes still triggers fallback, which
// is safe because the real shell re-interprets the full string.
func NeedsRealShell(command string) bool {
	for _, marker := range realShellMarkers {
		if strings.Contains(command, marker) {
			return true
		}
	}
	return false
}
