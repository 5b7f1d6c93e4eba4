package vcmd

import "strconv"

// Exit yields the given exit code, defaulting to 0. Unparseable codes
// also fall back to 0, matching lenient shell behavior.
func Exit(ctx *Context) Result {
	code := 0
	if len(ctx.Argv) > 0 {
		if n, err := strconv.Atoi(ctx.Argv[0]); err == nil {
			code = n
		}
	}
	return ErrorCode("", code)
}

func init() {
	addCmd("exit", Exit)
}
