package vcmd

import "strings"

// maxBufferedYesLines caps output when no streaming sink is attached,
// so yes cannot buffer unbounded output in memory.
const maxBufferedYesLines = 1000

// Yes repeats its arguments (default "y") until cancelled. With a
// streaming sink attached it runs indefinitely, polling cancellation
// between sends; without one it emits a bounded number of lines.
func Yes(ctx *Context) Result {
	word := "y"
	if len(ctx.Argv) > 0 {
		word = strings.Join(ctx.Argv, " ")
	}
	line := word + "\n"

	if ctx.Sink != nil {
		for {
			if ctx.IsCancelled() {
				return Cancelled()
			}
			if !ctx.Sink.SendStdout([]byte(line)) {
				return Cancelled()
			}
		}
	}

	var out strings.Builder
	limit := ctx.LineCap()
	for i := 0; i < limit; i++ {
		if ctx.IsCancelled() {
			return Result{Stdout: out.String(), Code: 130}
		}
		out.WriteString(line)
	}
	return Success(out.String())
}

func init() {
	addCmd("yes", Yes)
}
