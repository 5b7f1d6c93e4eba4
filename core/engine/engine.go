// Package engine evaluates parsed command trees against an execution
// context, dispatching each simple stage to either the virtual command
// table or a platform shell and combining stage results according to
// sequence, pipeline and subshell semantics.
package engine

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/cmdstream/cmdstream/core/shell"
	"github.com/cmdstream/cmdstream/core/trace"
	"github.com/cmdstream/cmdstream/core/vcmd"
)

// Engine evaluates command trees. A single engine is safe for
// concurrent use; all per-invocation state lives in the ExecContext.
type Engine struct {
	// Table is the virtual command table consulted for simple stages.
	Table *vcmd.Table
	// Settings holds the sh-style option flags. Recorded, not enforced.
	Settings *Settings
	// Shell overrides platform shell discovery when Path is set.
	Shell ShellConfig

	shellOnce sync.Once
	shellCfg  ShellConfig
	shellErr  error

	runnersMu sync.Mutex
	runners   map[uuid.UUID]*Runner
}

// New builds an engine with every builtin registered.
func New() *Engine {
	return &Engine{Table: vcmd.Default(), Settings: NewSettings()}
}

// runnable is what a simple stage resolves to. Resolution happens in
// exactly one place so virtual dispatch and process spawning cannot
// drift apart between the top-level, sequence and pipeline paths.
type runnable interface {
	run(e *Engine, ctx *ExecContext) (vcmd.Result, error)
}

type virtualRunnable struct {
	fn   vcmd.HandlerFunc
	node *shell.Simple
}

type processRunnable struct {
	raw string
}

// resolve maps a simple stage to its runnable. Dispatch keys on the
// raw first word, so a quoted program name never matches the table and
// falls through to the shell.
func (e *Engine) resolve(ctx *ExecContext, node *shell.Simple) runnable {
	if ctx.VirtualEnabled {
		if fn, ok := e.Table.Lookup(node.Name); ok {
			return &virtualRunnable{fn: fn, node: node}
		}
	}
	return &processRunnable{raw: node.Raw}
}

func (v *virtualRunnable) run(e *Engine, ctx *ExecContext) (vcmd.Result, error) {
	args := make([]string, 0, len(v.node.Args))
	for _, a := range v.node.Args {
		args = append(args, a.Value)
	}
	c := vcmd.Context{
		Argv:      args,
		Stdin:     ctx.Stdin,
		HasStdin:  ctx.HasStdin,
		Dir:       ctx.Dir,
		Env:       ctx.Env,
		Sink:      ctx.Sink,
		Cancelled: ctx.Cancel.Cancelled,
		FS:        ctx.FS,
		MaxLines:  ctx.MaxLines,
	}
	trace.Tracef("engine", "virtual %s argv=%v", v.node.Name, args)
	res := v.fn(&c)
	// cd rewrites the logical cwd on the command context; fold it back
	// so later stages in the same sequence see it.
	ctx.Dir = c.Dir

	// Buffered output still flows to the sink so mirroring and event
	// listeners see virtual stages the same way as spawned ones.
	// Streaming handlers already sent theirs and return empty output.
	if ctx.Sink != nil {
		if res.Stdout != "" {
			ctx.Sink.SendStdout([]byte(res.Stdout))
		}
		if res.Stderr != "" {
			ctx.Sink.SendStderr([]byte(res.Stderr))
		}
	}
	return res, nil
}

func (p *processRunnable) run(e *Engine, ctx *ExecContext) (vcmd.Result, error) {
	return e.spawn(ctx, p.raw)
}

// Eval evaluates a command tree. The returned error is non-nil only
// for host faults (no usable shell, fork or exec failure); every
// command-level failure is data in the Result, never an error.
func (e *Engine) Eval(ctx *ExecContext, cmd shell.Command) (vcmd.Result, error) {
	if ctx.cancelled() {
		return vcmd.Cancelled(), nil
	}

	switch node := cmd.(type) {
	case *shell.Simple:
		return e.resolve(ctx, node).run(e, ctx)
	case *shell.Sequence:
		return e.evalSequence(ctx, node)
	case *shell.Pipeline:
		return e.evalPipeline(ctx, node)
	case *shell.Subshell:
		// Directory changes and other context mutations inside the
		// subshell stay in the copy.
		inner := ctx.clone()
		return e.Eval(&inner, node.Inner)
	case nil:
		return vcmd.SuccessEmpty(), nil
	default:
		return vcmd.Error(fmt.Sprintf("unsupported command node %T\n", cmd)), nil
	}
}

// evalSequence runs stages left to right. && skips the next stage
// after a failure, || after a success, ; never skips. Every executed
// stage reads the original context stdin; a stage's stdout never feeds
// the next stage here. The result is that of the last stage actually
// executed.
func (e *Engine) evalSequence(ctx *ExecContext, node *shell.Sequence) (vcmd.Result, error) {
	last := vcmd.SuccessEmpty()
	for i, stage := range node.Stages {
		if i > 0 {
			switch node.Operators[i-1] {
			case shell.KindAnd:
				if !last.Ok() {
					continue
				}
			case shell.KindOr:
				if last.Ok() {
					continue
				}
			}
		}
		if ctx.cancelled() {
			return vcmd.Result{Stdout: last.Stdout, Stderr: last.Stderr, Code: 130}, nil
		}
		res, err := e.Eval(ctx, stage)
		if err != nil {
			return res, err
		}
		last = res
	}
	return last, nil
}

// evalPipeline feeds each stage's stdout to the next stage's stdin.
// Stderr accumulates across all executed stages. The first stage to
// exit non-zero ends the pipeline with that stage's stdout and code;
// later stages never run. This deliberately diverges from POSIX, which
// runs every stage and takes the last exit code.
func (e *Engine) evalPipeline(ctx *ExecContext, node *shell.Pipeline) (vcmd.Result, error) {
	var stderr strings.Builder
	stdin, hasStdin := ctx.Stdin, ctx.HasStdin
	last := vcmd.SuccessEmpty()

	for i, stage := range node.Stages {
		if ctx.cancelled() {
			return vcmd.Result{Stdout: last.Stdout, Stderr: stderr.String(), Code: 130}, nil
		}

		// Each stage evaluates in its own context copy, so a cd inside
		// one stage does not leak. Intermediate stages cannot stream:
		// their stdout must be buffered to feed the next stage.
		stageCtx := ctx.clone()
		stageCtx.Stdin, stageCtx.HasStdin = stdin, hasStdin
		if i < len(node.Stages)-1 {
			stageCtx.Sink = nil
		}

		res, err := e.Eval(&stageCtx, stage)
		if err != nil {
			return res, err
		}
		stderr.WriteString(res.Stderr)
		if !res.Ok() {
			return vcmd.Result{Stdout: res.Stdout, Stderr: stderr.String(), Code: res.Code}, nil
		}
		stdin, hasStdin = res.Stdout, true
		last = res
	}
	return vcmd.Result{Stdout: last.Stdout, Stderr: stderr.String(), Code: last.Code}, nil
}
