package engine

import (
	"sync"

	"github.com/cmdstream/cmdstream/core/trace"
)

// Settings mirrors the sh `set` option flags. The engine records them
// for callers to read but does not enforce them; in particular
// pipeline failure handling deliberately ignores pipefail (see
// evalPipeline).
type Settings struct {
	mu sync.Mutex

	Errexit   bool // set -e
	Verbose   bool // set -v
	Xtrace    bool // set -x
	Pipefail  bool // set -o pipefail
	Nounset   bool // set -u
	Noglob    bool // set -f
	Allexport bool // set -a
}

// NewSettings returns settings with every option off.
func NewSettings() *Settings {
	return &Settings{}
}

// Set flips an option by short flag or long name. Unknown options are
// traced and ignored.
func (s *Settings) Set(option string, value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch option {
	case "e", "errexit":
		s.Errexit = value
	case "v", "verbose":
		s.Verbose = value
	case "x", "xtrace":
		s.Xtrace = value
	case "u", "nounset":
		s.Nounset = value
	case "f", "noglob":
		s.Noglob = value
	case "a", "allexport":
		s.Allexport = value
	case "pipefail", "o pipefail":
		s.Pipefail = value
	default:
		trace.Tracef("settings", "unknown shell option: %s", option)
	}
}

// Enable turns an option on.
func (s *Settings) Enable(option string) {
	s.Set(option, true)
}

// Disable turns an option off.
func (s *Settings) Disable(option string) {
	s.Set(option, false)
}

// Snapshot returns a copy of the current option values.
func (s *Settings) Snapshot() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Settings{
		Errexit:   s.Errexit,
		Verbose:   s.Verbose,
		Xtrace:    s.Xtrace,
		Pipefail:  s.Pipefail,
		Nounset:   s.Nounset,
		Noglob:    s.Noglob,
		Allexport: s.Allexport,
	}
}
