package engine

import (
	"github.com/spf13/afero"

	"github.com/cmdstream/cmdstream/core/stream"
)

// ExecContext is the state threaded by value through every recursive
// evaluation call. There is no process-global cwd or enable flag: a
// subshell gets a copy, so directory changes inside it cannot leak to
// the parent, and two top-level evaluations can run concurrently in
// one process.
type ExecContext struct {
	// Dir is the logical working directory.
	Dir string
	// Env holds KEY=VALUE overrides merged over the parent process
	// environment for spawned stages, and passed as-is to virtual
	// stages.
	Env []string
	// Stdin is literal input for the next stage; HasStdin
	// distinguishes empty content from none.
	Stdin    string
	HasStdin bool
	// Sink receives streamed chunks from spawned processes and
	// streaming-capable virtual commands. Optional.
	Sink *stream.Stream
	// Cancel is the shared one-shot cancellation token.
	Cancel *stream.Token
	// VirtualEnabled gates the whole virtual command table; disabled
	// means every simple stage spawns a process.
	VirtualEnabled bool
	// FS is the filesystem virtual commands operate on.
	FS afero.Fs
	// MaxLines caps buffered output of unbounded virtual commands when
	// they cannot stream; 0 means the builtin default.
	MaxLines int
}

// clone returns an isolated copy for subshell evaluation. The
// cancellation token and sink stay shared by reference.
func (c *ExecContext) clone() ExecContext {
	cp := *c
	return cp
}

// cancelled reports whether the shared token has fired.
func (c *ExecContext) cancelled() bool {
	return c.Cancel.Cancelled()
}
