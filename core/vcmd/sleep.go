package vcmd

import (
	"fmt"
	"strconv"
	"time"
)

// cancelPollInterval bounds how long a cancelled long-running command
// keeps going before noticing.
const cancelPollInterval = 100 * time.Millisecond

// Sleep pauses for the given number of seconds, polling for
// cancellation at sub-second intervals.
func Sleep(ctx *Context) Result {
	arg := "0"
	if len(ctx.Argv) > 0 {
		arg = ctx.Argv[0]
	}

	seconds, err := strconv.ParseFloat(arg, 64)
	if err != nil || seconds < 0 {
		return Error(fmt.Sprintf("sleep: invalid time interval '%s'\n", arg))
	}

	deadline := time.Now().Add(time.Duration(seconds * float64(time.Second)))
	for {
		if ctx.IsCancelled() {
			return Cancelled()
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return SuccessEmpty()
		}
		if remaining > cancelPollInterval {
			remaining = cancelPollInterval
		}
		time.Sleep(remaining)
	}
}

func init() {
	addCmd("sleep", Sleep)
}
