package engine

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmdstream/cmdstream/core/shell"
	"github.com/cmdstream/cmdstream/core/stream"
	"github.com/cmdstream/cmdstream/core/vcmd"
)

func newTestContext() *ExecContext {
	return &ExecContext{
		Dir:            "/",
		Cancel:         stream.NewToken(),
		VirtualEnabled: true,
		FS:             afero.NewMemMapFs(),
	}
}

func mustEval(t *testing.T, e *Engine, ctx *ExecContext, command string) vcmd.Result {
	t.Helper()
	tree, ok := shell.Parse(command)
	require.True(t, ok, "parse %q", command)

	res, err := e.Eval(ctx, tree)
	require.NoError(t, err)
	return res
}

func TestEvalSimpleVirtual(t *testing.T) {
	res := mustEval(t, New(), newTestContext(), "echo hello world")
	assert.Equal(t, 0, res.Code)
	assert.Equal(t, "hello world\n", res.Stdout)
}

func TestEvalSequenceGating(t *testing.T) {
	cases := []struct {
		command string
		stdout  string
		code    int
	}{
		{"true && echo ran", "ran\n", 0},
		// The skipped stage leaves the failing result in place.
		{"false && echo ran", "", 1},
		{"false || echo ran", "ran\n", 0},
		{"true || echo skipped", "", 0},
		{"echo a; false; echo b", "b\n", 0},
		{"false && echo a || echo b", "b\n", 0},
		{"echo a; exit 4", "", 4},
	}

	for _, tc := range cases {
		t.Run(tc.command, func(t *testing.T) {
			res := mustEval(t, New(), newTestContext(), tc.command)
			assert.Equal(t, tc.code, res.Code)
			assert.Equal(t, tc.stdout, res.Stdout)
		})
	}
}

func TestEvalAmpersandRunsForeground(t *testing.T) {
	// Background execution is unsupported; & separated stages run in
	// order like ; and a trailing & is harmless.
	res := mustEval(t, New(), newTestContext(), "echo one & echo two")
	assert.Equal(t, 0, res.Code)
	assert.Equal(t, "two\n", res.Stdout)

	res = mustEval(t, New(), newTestContext(), "echo done &")
	assert.Equal(t, "done\n", res.Stdout)
}

func TestEvalSequenceStagesShareStdin(t *testing.T) {
	ctx := newTestContext()
	ctx.Stdin, ctx.HasStdin = "original", true

	// Both stages read the original stdin; the first stage's output
	// does not become the second stage's input.
	res := mustEval(t, New(), ctx, "cat; cat")
	assert.Equal(t, "original", res.Stdout)
}

func TestEvalSequenceCdPersists(t *testing.T) {
	ctx := newTestContext()
	require.NoError(t, ctx.FS.MkdirAll("/sub", 0755))

	res := mustEval(t, New(), ctx, "cd /sub; pwd")
	assert.Equal(t, "/sub\n", res.Stdout)
	assert.Equal(t, "/sub", ctx.Dir)
}

func TestEvalPipeline(t *testing.T) {
	res := mustEval(t, New(), newTestContext(), "echo hello | cat")
	assert.Equal(t, "hello\n", res.Stdout)

	res = mustEval(t, New(), newTestContext(), "echo hi | cat | cat")
	assert.Equal(t, "hi\n", res.Stdout)
}

func TestEvalPipelineShortCircuit(t *testing.T) {
	// The failing middle stage ends the pipeline; the final stage
	// never runs.
	res := mustEval(t, New(), newTestContext(), "echo x | false | echo y")
	assert.Equal(t, 1, res.Code)
	assert.Empty(t, res.Stdout)

	res = mustEval(t, New(), newTestContext(), "cat ghost | echo reached")
	assert.Equal(t, 1, res.Code)
	assert.Empty(t, res.Stdout)
	assert.Equal(t, "cat: ghost: No such file or directory\n", res.Stderr)
}

func TestEvalPipelineStderrAccumulates(t *testing.T) {
	e := New()
	e.Table.Register("warn", func(ctx *vcmd.Context) vcmd.Result {
		return vcmd.Result{Stdout: "out\n", Stderr: "warn\n"}
	})

	res := mustEval(t, e, newTestContext(), "warn | warn")
	assert.Equal(t, 0, res.Code)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "warn\nwarn\n", res.Stderr)
}

func TestEvalSubshellIsolatesCwd(t *testing.T) {
	ctx := newTestContext()
	require.NoError(t, ctx.FS.MkdirAll("/sub", 0755))

	res := mustEval(t, New(), ctx, "(cd /sub && pwd)")
	assert.Equal(t, "/sub\n", res.Stdout)
	assert.Equal(t, "/", ctx.Dir, "subshell cwd change must not leak")

	res = mustEval(t, New(), ctx, "(cd /sub); pwd")
	assert.Equal(t, "/\n", res.Stdout)
}

func TestEvalCancelledBeforeStart(t *testing.T) {
	ctx := newTestContext()
	ctx.Cancel.Cancel()

	res := mustEval(t, New(), ctx, "echo never")
	assert.Equal(t, 130, res.Code)
	assert.Empty(t, res.Stdout)
}

func TestEvalUnknownNameFallsThroughToShell(t *testing.T) {
	skipOnWindows(t)

	// Not in the virtual table, so the stage runs under /bin/sh.
	res := mustEval(t, New(), newTestContext(), "printf ping")
	assert.Equal(t, 0, res.Code)
	assert.Equal(t, "ping", res.Stdout)
}

func TestEvalVirtualDisabled(t *testing.T) {
	skipOnWindows(t)

	ctx := newTestContext()
	ctx.VirtualEnabled = false

	// echo is registered, but disabled dispatch spawns a process. The
	// observable behavior matches the virtual implementation.
	res := mustEval(t, New(), ctx, "echo spawned")
	assert.Equal(t, 0, res.Code)
	assert.Equal(t, "spawned\n", res.Stdout)
}

func TestEvalQuotedNameSkipsTable(t *testing.T) {
	skipOnWindows(t)

	e := New()
	e.Table.Register("echo", func(*vcmd.Context) vcmd.Result {
		return vcmd.Success("virtual\n")
	})

	// A quoted program name never matches the table.
	res := mustEval(t, e, newTestContext(), "'echo' real")
	assert.Equal(t, "real\n", res.Stdout)
}

func TestSettings(t *testing.T) {
	s := NewSettings()
	s.Enable("e")
	s.Enable("pipefail")
	s.Set("verbose", true)
	s.Enable("not-an-option") // ignored

	snap := s.Snapshot()
	assert.True(t, snap.Errexit)
	assert.True(t, snap.Pipefail)
	assert.True(t, snap.Verbose)
	assert.False(t, snap.Xtrace)

	s.Disable("errexit")
	assert.False(t, s.Snapshot().Errexit)
}
