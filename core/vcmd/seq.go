package vcmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Seq prints a number sequence: seq LAST, seq FIRST LAST, or
// seq FIRST INCREMENT LAST. Whole values print without a decimal
// point. Output goes to the streaming sink when one is attached.
func Seq(ctx *Context) Result {
	if len(ctx.Argv) == 0 {
		return MissingOperand("seq")
	}

	parse := func(s string) (float64, *Result) {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			r := Error(fmt.Sprintf("seq: invalid floating point argument: '%s'\n", s))
			return 0, &r
		}
		return n, nil
	}

	first, increment := 1.0, 1.0
	var last float64
	var errResult *Result

	switch len(ctx.Argv) {
	case 1:
		last, errResult = parse(ctx.Argv[0])
	case 2:
		if first, errResult = parse(ctx.Argv[0]); errResult == nil {
			last, errResult = parse(ctx.Argv[1])
		}
	default:
		if first, errResult = parse(ctx.Argv[0]); errResult == nil {
			if increment, errResult = parse(ctx.Argv[1]); errResult == nil {
				last, errResult = parse(ctx.Argv[2])
			}
		}
	}
	if errResult != nil {
		return *errResult
	}

	if increment == 0 {
		return Error("seq: zero increment\n")
	}

	var out strings.Builder
	emit := func(v float64) bool {
		var line string
		// Whole values outside int64 range keep the float format;
		// converting them to int64 is platform-dependent.
		if math.Trunc(v) == v && math.Abs(v) < 1<<63 {
			line = strconv.FormatInt(int64(v), 10) + "\n"
		} else {
			line = strconv.FormatFloat(v, 'f', -1, 64) + "\n"
		}
		if ctx.Sink != nil {
			return ctx.Sink.SendStdout([]byte(line))
		}
		out.WriteString(line)
		return true
	}

	for current := first; (increment > 0 && current <= last) || (increment < 0 && current >= last); {
		if ctx.IsCancelled() {
			return Result{Stdout: out.String(), Code: 130}
		}
		if !emit(current) {
			return Result{Stdout: out.String(), Code: 130}
		}
		next := current + increment
		if next == current {
			// The increment is too small to advance at this magnitude.
			break
		}
		current = next
	}

	return Success(out.String())
}

func init() {
	addCmd("seq", Seq)
}
