// Package vcmd implements the virtual command table: builtin commands
// executed in-process instead of spawning a child. Filesystem access
// goes through afero so tests run against an in-memory fs.
package vcmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	getopt "github.com/pborman/getopt/v2"
	"github.com/spf13/afero"

	"github.com/cmdstream/cmdstream/core/stream"
	"github.com/cmdstream/cmdstream/core/trace"
)

// Context carries everything a virtual command may use. The engine
// builds one per Simple stage.
type Context struct {
	// Argv holds the arguments, program name excluded.
	Argv []string
	// Stdin is literal input content; empty means none.
	Stdin string
	// HasStdin distinguishes empty piped input from no input.
	HasStdin bool
	// Dir is the logical working directory. Handlers that change
	// directory (cd) rewrite it; the engine copies it back into the
	// execution context.
	Dir string
	// Env holds environment entries in KEY=VALUE form.
	Env []string
	// Sink receives streamed output chunks when non-nil. Commands with
	// unbounded output must stream rather than buffer.
	Sink *stream.Stream
	// Cancelled is the cancellation predicate; nil means never.
	Cancelled func() bool
	// FS is the filesystem commands operate on.
	FS afero.Fs
	// MaxLines caps buffered output of unbounded commands when no sink
	// is attached; 0 means the package default.
	MaxLines int
}

// LineCap returns the buffered-output cap for unbounded commands.
func (c *Context) LineCap() int {
	if c.MaxLines > 0 {
		return c.MaxLines
	}
	return maxBufferedYesLines
}

// IsCancelled reports whether the invocation was cancelled.
func (c *Context) IsCancelled() bool {
	return c.Cancelled != nil && c.Cancelled()
}

// Cwd returns the logical working directory, defaulting to /.
func (c *Context) Cwd() string {
	if c.Dir != "" {
		return c.Dir
	}
	return "/"
}

// Resolve makes a path absolute against the logical working directory.
func (c *Context) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(c.Cwd(), path)
}

// Getenv looks a key up in the context environment.
func (c *Context) Getenv(key string) string {
	prefix := key + "="
	for i := len(c.Env) - 1; i >= 0; i-- {
		if strings.HasPrefix(c.Env[i], prefix) {
			return c.Env[i][len(prefix):]
		}
	}
	return ""
}

// Fs returns the context filesystem, defaulting to the host OS fs.
func (c *Context) Fs() afero.Fs {
	if c.FS != nil {
		return c.FS
	}
	return afero.NewOsFs()
}

// Result is the outcome of one command stage.
type Result struct {
	Stdout string
	Stderr string
	Code   int
}

// Success builds a zero-code result with stdout content.
func Success(stdout string) Result {
	return Result{Stdout: stdout}
}

// SuccessEmpty builds a zero-code result with no output.
func SuccessEmpty() Result {
	return Result{}
}

// Error builds a code-1 result with stderr content.
func Error(stderr string) Result {
	return Result{Stderr: stderr, Code: 1}
}

// ErrorCode builds a result with stderr content and an explicit code.
func ErrorCode(stderr string, code int) Result {
	return Result{Stderr: stderr, Code: code}
}

// MissingOperand is the standard failure for a command invoked without
// a required argument.
func MissingOperand(name string) Result {
	return Error(fmt.Sprintf("%s: missing operand\n", name))
}

// Cancelled is the standard result for a cancelled command; output
// already produced is preserved by the caller.
func Cancelled() Result {
	return Result{Code: 130}
}

// Ok reports whether the command succeeded.
func (r Result) Ok() bool {
	return r.Code == 0
}

// HandlerFunc is the contract for a virtual command implementation.
type HandlerFunc func(*Context) Result

// Table maps command names to handlers. Lookup is an exact
// case-sensitive match with no PATH-style resolution. Tables are built
// once and read-mostly; dispatch takes no lock.
type Table struct {
	handlers map[string]HandlerFunc
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{handlers: make(map[string]HandlerFunc)}
}

// Register adds or replaces a handler.
func (t *Table) Register(name string, fn HandlerFunc) {
	t.handlers[name] = fn
}

// Deregister removes a handler, reporting whether it existed.
func (t *Table) Deregister(name string) bool {
	_, ok := t.handlers[name]
	delete(t.handlers, name)
	return ok
}

// Lookup finds a handler by exact name. Unknown names are not an
// error; callers fall through to process spawning.
func (t *Table) Lookup(name string) (HandlerFunc, bool) {
	fn, ok := t.handlers[name]
	return fn, ok
}

// Names returns the registered command names, unsorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.handlers))
	for name := range t.handlers {
		names = append(names, name)
	}
	return names
}

var builtins = map[string]HandlerFunc{}

func addCmd(name string, fn HandlerFunc) {
	builtins[name] = fn
}

// Default returns a table with every builtin registered.
func Default() *Table {
	t := NewTable()
	for name, fn := range builtins {
		t.Register(name, fn)
	}
	return t
}

// SimpleCommand wraps a handler with getopt flag parsing and a
// standard usage/help text, mirroring the structure of every builtin.
type SimpleCommand struct {
	// Use holds a one line usage string; the first word is the
	// command's name.
	Use string
	// Short holds a one line description of the command.
	Short string

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}
	return s.flags
}

func (s *SimpleCommand) name() string {
	if i := strings.IndexByte(s.Use, ' '); i > 0 {
		return s.Use[:i]
	}
	return s.Use
}

// PrintHelp writes usage for the command.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "usage: %s\n%s\n", s.Use, s.Short)
}

// Run parses flags from the context argv and calls the callback with
// the positional arguments. Flag errors produce a code-1 result with
// an explanatory stderr rather than aborting.
func (s *SimpleCommand) Run(ctx *Context, callback func(args []string) Result) Result {
	opts := s.Flags()

	argv := append([]string{s.name()}, ctx.Argv...)
	if err := opts.Getopt(argv, nil); err != nil {
		trace.Tracef("vcmd", "%s: flag parse failed: %v", s.name(), err)
		return Error(fmt.Sprintf("%s: invalid argument: %v\n", s.name(), err))
	}

	return callback(opts.Args())
}
