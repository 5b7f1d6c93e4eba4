package vcmd

import "strings"

// Env prints the context environment, one KEY=VALUE per line.
func Env(ctx *Context) Result {
	if len(ctx.Env) == 0 {
		return SuccessEmpty()
	}
	return Success(strings.Join(ctx.Env, "\n") + "\n")
}

func init() {
	addCmd("env", Env)
}
