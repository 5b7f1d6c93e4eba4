package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/cmdstream/cmdstream/core/stream"
	"github.com/cmdstream/cmdstream/core/trace"
	"github.com/cmdstream/cmdstream/core/vcmd"
)

// ShellConfig names the platform shell used for non-virtual stages.
// Args are the arguments preceding the command string, normally -c.
type ShellConfig struct {
	Path string
	Args []string
}

// shellCandidates are tried in order before falling back to PATH.
var shellCandidates = []string{"/bin/sh", "/usr/bin/sh", "/bin/bash"}

// FindShell locates the platform shell.
func FindShell() (ShellConfig, error) {
	if runtime.GOOS == "windows" {
		if path, err := exec.LookPath("cmd.exe"); err == nil {
			return ShellConfig{Path: path, Args: []string{"/c"}}, nil
		}
		if path, err := exec.LookPath("powershell.exe"); err == nil {
			return ShellConfig{Path: path, Args: []string{"-Command"}}, nil
		}
		return ShellConfig{}, errors.New("no usable shell: tried cmd.exe and powershell.exe")
	}
	for _, candidate := range shellCandidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return ShellConfig{Path: candidate, Args: []string{"-c"}}, nil
		}
	}
	if path, err := exec.LookPath("sh"); err == nil {
		return ShellConfig{Path: path, Args: []string{"-c"}}, nil
	}
	return ShellConfig{}, errors.New("no usable shell found on PATH")
}

// shell returns the configured or discovered platform shell, resolving
// it at most once per engine.
func (e *Engine) shell() (ShellConfig, error) {
	if e.Shell.Path != "" {
		return e.Shell, nil
	}
	e.shellOnce.Do(func() {
		e.shellCfg, e.shellErr = FindShell()
	})
	return e.shellCfg, e.shellErr
}

// readChunkSize is the read buffer for each output drainer.
const readChunkSize = 8192

// spawn runs the original command text under the platform shell. The
// text is passed untokenized so the shell applies its own expansion
// and redirection rules. Two goroutines drain stdout and stderr into a
// shared channel and are joined before Wait, so no trailing output is
// lost to pipe teardown. A fired cancellation token kills the process
// and maps the exit code to 130.
func (e *Engine) spawn(ctx *ExecContext, command string) (vcmd.Result, error) {
	sh, err := e.shell()
	if err != nil {
		return vcmd.ErrorCode(fmt.Sprintf("sh: %v\n", err), 127), err
	}

	cmd := exec.Command(sh.Path, append(append([]string{}, sh.Args...), command)...)
	if ctx.Dir != "" {
		cmd.Dir = ctx.Dir
	}
	if len(ctx.Env) > 0 {
		cmd.Env = append(os.Environ(), ctx.Env...)
	}

	var stdinPipe io.WriteCloser
	if ctx.HasStdin {
		if stdinPipe, err = cmd.StdinPipe(); err != nil {
			return vcmd.ErrorCode(fmt.Sprintf("%s: %v\n", sh.Path, err), 127), err
		}
	}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return vcmd.ErrorCode(fmt.Sprintf("%s: %v\n", sh.Path, err), 127), err
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return vcmd.ErrorCode(fmt.Sprintf("%s: %v\n", sh.Path, err), 127), err
	}

	trace.Tracef("engine", "spawn %s -c %q", sh.Path, command)
	if err := cmd.Start(); err != nil {
		return vcmd.ErrorCode(fmt.Sprintf("%s: %v\n", sh.Path, err), 127), err
	}

	if stdinPipe != nil {
		go func() {
			io.WriteString(stdinPipe, ctx.Stdin)
			stdinPipe.Close()
		}()
	}

	chunks := make(chan stream.Chunk, 64)
	var readers sync.WaitGroup
	readers.Add(2)
	go drainPipe(stdoutPipe, stream.ChunkStdout, chunks, &readers)
	go drainPipe(stderrPipe, stream.ChunkStderr, chunks, &readers)
	go func() {
		readers.Wait()
		close(chunks)
	}()

	waitDone := make(chan struct{})
	if ctx.Cancel != nil {
		go func() {
			select {
			case <-ctx.Cancel.Done():
				cmd.Process.Kill()
			case <-waitDone:
			}
		}()
	}

	var stdout, stderr strings.Builder
	for c := range chunks {
		switch c.Kind {
		case stream.ChunkStdout:
			stdout.Write(c.Data)
			if ctx.Sink != nil {
				ctx.Sink.SendStdout(c.Data)
			}
		case stream.ChunkStderr:
			stderr.Write(c.Data)
			if ctx.Sink != nil {
				ctx.Sink.SendStderr(c.Data)
			}
		}
	}

	waitErr := cmd.Wait()
	close(waitDone)

	code := 0
	if waitErr != nil {
		// ExitCode is -1 when the status is unobtainable, which is
		// exactly the sentinel callers expect.
		code = -1
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			code = exitErr.ExitCode()
		}
	}
	if ctx.Cancel.Cancelled() {
		code = 130
	}
	return vcmd.Result{Stdout: stdout.String(), Stderr: stderr.String(), Code: code}, nil
}

// drainPipe reads a process output pipe to EOF, forwarding every read
// as its own chunk.
func drainPipe(r io.Reader, kind stream.ChunkKind, out chan<- stream.Chunk, wg *sync.WaitGroup) {
	defer wg.Done()
	buf := make([]byte, readChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			out <- stream.Chunk{Kind: kind, Data: data}
		}
		if err != nil {
			return
		}
	}
}
