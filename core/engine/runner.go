package engine

import (
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/cmdstream/cmdstream/core/shell"
	"github.com/cmdstream/cmdstream/core/stream"
	"github.com/cmdstream/cmdstream/core/trace"
	"github.com/cmdstream/cmdstream/core/vcmd"
)

// Options configure one top-level command invocation.
type Options struct {
	// Mirror writes output to MirrorOut/MirrorErr as it is produced.
	Mirror bool
	// Capture keeps the accumulated output in the result. With Capture
	// off the result carries only the exit code.
	Capture bool
	// Stdin is literal input for the command; HasStdin distinguishes
	// empty input from none.
	Stdin    string
	HasStdin bool
	// Dir is the initial working directory; empty means the process
	// cwd for spawned stages and / for virtual ones.
	Dir string
	// Env holds KEY=VALUE overrides merged over the parent environment.
	Env []string
	// VirtualCommands enables the builtin table.
	VirtualCommands bool
	// FS is the filesystem virtual commands operate on; nil means the
	// host OS filesystem.
	FS afero.Fs
	// MirrorOut and MirrorErr default to os.Stdout and os.Stderr.
	MirrorOut io.Writer
	MirrorErr io.Writer
	// ThrottleBytesPerSec rate-limits mirrored output; 0 is unlimited.
	ThrottleBytesPerSec int64
	// StripANSI removes escape sequences from mirrored output. Only
	// the mirror is filtered; captured output and events stay raw.
	StripANSI bool
	// MaxUnstreamedLines caps buffered output of unbounded virtual
	// commands when they cannot stream; 0 uses the builtin default.
	MaxUnstreamedLines int
}

// DefaultOptions mirror, capture and dispatch virtually.
func DefaultOptions() Options {
	return Options{Mirror: true, Capture: true, VirtualCommands: true}
}

// Runner is one top-level invocation: a command string, its options,
// a cancellation token and an event emitter. Runners are single-use.
type Runner struct {
	// ID keys the runner in the engine registry.
	ID uuid.UUID
	// Command is the original command string, never pre-tokenized.
	Command string
	// Opts are fixed at creation.
	Opts Options

	engine *Engine
	events *stream.Emitter
	token  *stream.Token

	mu       sync.Mutex
	started  bool
	finished bool
	result   vcmd.Result
	err      error
	done     chan struct{}
}

// NewRunner creates a runner and registers it with the engine.
func (e *Engine) NewRunner(command string, opts Options) *Runner {
	r := &Runner{
		ID:      uuid.New(),
		Command: command,
		Opts:    opts,
		engine:  e,
		events:  stream.NewEmitter(),
		token:   stream.NewToken(),
		done:    make(chan struct{}),
	}
	e.register(r)
	return r
}

func (e *Engine) register(r *Runner) {
	e.runnersMu.Lock()
	defer e.runnersMu.Unlock()
	if e.runners == nil {
		e.runners = make(map[uuid.UUID]*Runner)
	}
	e.runners[r.ID] = r
}

func (e *Engine) unregister(id uuid.UUID) {
	e.runnersMu.Lock()
	defer e.runnersMu.Unlock()
	delete(e.runners, id)
}

// ActiveRunners returns the runners currently registered, in no
// particular order.
func (e *Engine) ActiveRunners() []*Runner {
	e.runnersMu.Lock()
	defer e.runnersMu.Unlock()
	out := make([]*Runner, 0, len(e.runners))
	for _, r := range e.runners {
		out = append(out, r)
	}
	return out
}

// Events exposes the runner's emitter for listener registration.
// Listeners must be registered before Start to observe every event.
func (r *Runner) Events() *stream.Emitter {
	return r.events
}

// Kill fires the cancellation token. The command winds down at its
// next suspension point and reports exit code 130.
func (r *Runner) Kill() {
	r.token.Cancel()
}

// Start begins execution in the background. Calling Start twice is an
// error on the second call's part and is ignored.
func (r *Runner) Start() {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return
	}
	r.started = true
	r.mu.Unlock()

	go r.execute()
}

// Wait blocks until the command finishes and returns its result. The
// error is non-nil only for host faults; command failures are carried
// in the result.
func (r *Runner) Wait() (vcmd.Result, error) {
	<-r.done
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result, r.err
}

// Run executes the command to completion.
func (r *Runner) Run() (vcmd.Result, error) {
	r.Start()
	return r.Wait()
}

// Result returns the outcome and whether the runner has finished.
func (r *Runner) Result() (vcmd.Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result, r.finished
}

func (r *Runner) execute() {
	r.events.Emit(stream.EventSpawn, stream.EventPayload{Data: []byte(r.Command)})

	sink := stream.NewCancelable(r.token)
	var consumer sync.WaitGroup
	consumer.Add(1)
	go r.consume(sink, &consumer)

	ctx := &ExecContext{
		Dir:            r.Opts.Dir,
		Env:            r.Opts.Env,
		Stdin:          r.Opts.Stdin,
		HasStdin:       r.Opts.HasStdin,
		Sink:           sink,
		Cancel:         r.token,
		VirtualEnabled: r.Opts.VirtualCommands,
		FS:             r.Opts.FS,
		MaxLines:       r.Opts.MaxUnstreamedLines,
	}

	res, err := r.evaluate(ctx)

	sink.Close()
	consumer.Wait()

	if !r.Opts.Capture {
		res.Stdout, res.Stderr = "", ""
	}

	if err != nil {
		r.events.Emit(stream.EventError, stream.EventPayload{Err: err})
	}
	r.events.Emit(stream.EventExit, stream.EventPayload{Code: res.Code})
	r.events.Emit(stream.EventEnd, stream.EventPayload{Code: res.Code})

	// Unregister before signalling completion so a caller returning
	// from Wait observes the registry without this runner.
	r.engine.unregister(r.ID)

	r.mu.Lock()
	r.result, r.err, r.finished = res, err, true
	r.mu.Unlock()
	close(r.done)
}

// evaluate routes the command string: constructs the engine cannot
// reproduce go to the platform shell whole, everything else is parsed
// and evaluated natively.
func (r *Runner) evaluate(ctx *ExecContext) (vcmd.Result, error) {
	if shell.NeedsRealShell(r.Command) {
		trace.Tracef("runner", "real shell fallback for %q", r.Command)
		return r.engine.spawn(ctx, r.Command)
	}
	tree, ok := shell.Parse(r.Command)
	if !ok || tree == nil {
		return vcmd.SuccessEmpty(), nil
	}
	return r.engine.Eval(ctx, tree)
}

// consume drains the sink, mirroring chunks and fanning them out as
// events until the sink closes.
func (r *Runner) consume(sink *stream.Stream, wg *sync.WaitGroup) {
	defer wg.Done()

	var out, errw io.Writer
	if r.Opts.Mirror {
		out, errw = r.Opts.MirrorOut, r.Opts.MirrorErr
		if out == nil {
			out = os.Stdout
		}
		if errw == nil {
			errw = os.Stderr
		}
		if r.Opts.ThrottleBytesPerSec > 0 {
			out = stream.Throttle(out, r.Opts.ThrottleBytesPerSec)
			errw = stream.Throttle(errw, r.Opts.ThrottleBytesPerSec)
		}
	}

	mirror := func(w io.Writer, data []byte) {
		if w == nil {
			return
		}
		if r.Opts.StripANSI {
			data = []byte(shell.StripANSI(string(data)))
		}
		w.Write(data)
	}

	for {
		c, more := sink.Next()
		if !more {
			return
		}
		switch c.Kind {
		case stream.ChunkStdout:
			mirror(out, c.Data)
			r.events.Emit(stream.EventStdout, stream.EventPayload{Data: c.Data})
		case stream.ChunkStderr:
			mirror(errw, c.Data)
			r.events.Emit(stream.EventStderr, stream.EventPayload{Data: c.Data})
		}
		r.events.Emit(stream.EventData, stream.EventPayload{Data: c.Data})
	}
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns the shared package-level engine.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}

// Run executes a command string on the default engine with default
// options, mirroring disabled.
func Run(command string) (vcmd.Result, error) {
	opts := DefaultOptions()
	opts.Mirror = false
	return RunWith(command, opts)
}

// RunWith executes a command string on the default engine.
func RunWith(command string, opts Options) (vcmd.Result, error) {
	return Default().NewRunner(command, opts).Run()
}
