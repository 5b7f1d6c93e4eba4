package vcmd

import (
	"fmt"
	"os"
)

// Cd changes the logical working directory of the execution context.
// The change is visible to later stages in the same sequence but never
// escapes a subshell, and it never touches the process-global cwd.
func Cd(ctx *Context) Result {
	var target string
	switch {
	case len(ctx.Argv) == 0:
		target = ctx.Getenv("HOME")
		if target == "" {
			target = "/"
		}
	default:
		target = ctx.Argv[0]
	}

	resolved := ctx.Resolve(target)
	info, err := ctx.Fs().Stat(resolved)
	switch {
	case os.IsNotExist(err):
		return Error(fmt.Sprintf("cd: %s: No such file or directory\n", target))
	case err != nil:
		return Error(fmt.Sprintf("cd: %s: %v\n", target, err))
	case !info.IsDir():
		return Error(fmt.Sprintf("cd: %s: not a directory\n", target))
	}

	ctx.Dir = resolved
	return SuccessEmpty()
}

func init() {
	addCmd("cd", Cd)
}
