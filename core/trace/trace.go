// Package trace provides component-scoped debug logging for the
// engine, gated by the CMDSTREAM_TRACE environment variable.
//
// CMDSTREAM_TRACE=1 (or "true") enables all components; a
// comma-separated list ("engine,runner") enables only those named.
package trace

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	initOnce sync.Once
	logger   zerolog.Logger
	allOn    bool
	enabled  map[string]bool
	envName  = "CMDSTREAM_TRACE"
)

// SetEnv renames the gating environment variable. The gate latches on
// first use, so this only has effect before anything traces.
func SetEnv(name string) {
	if name != "" {
		envName = name
	}
}

func setup() {
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	val := os.Getenv(envName)
	switch strings.ToLower(val) {
	case "":
		// disabled
	case "1", "true", "all":
		allOn = true
	default:
		enabled = make(map[string]bool)
		for _, part := range strings.Split(val, ",") {
			enabled[strings.TrimSpace(strings.ToLower(part))] = true
		}
	}
}

// Enabled reports whether tracing is on for a component.
func Enabled(component string) bool {
	initOnce.Do(setup)
	if allOn {
		return true
	}
	return enabled[strings.ToLower(component)]
}

// Trace logs a message under a component when tracing is enabled.
func Trace(component, msg string) {
	if !Enabled(component) {
		return
	}
	logger.Debug().Str("component", component).Msg(msg)
}

// Tracef logs a formatted message. The arguments are only formatted
// when the component is enabled.
func Tracef(component, format string, args ...interface{}) {
	if !Enabled(component) {
		return
	}
	logger.Debug().Str("component", component).Msg(fmt.Sprintf(format, args...))
}
