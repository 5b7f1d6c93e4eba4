package vcmd

import (
	"path/filepath"
	"strings"
)

// Basename strips the directory (and an optional suffix) from a path.
func Basename(ctx *Context) Result {
	if len(ctx.Argv) == 0 {
		return MissingOperand("basename")
	}

	name := filepath.Base(strings.TrimRight(ctx.Argv[0], "/"))
	if len(ctx.Argv) > 1 {
		suffix := ctx.Argv[1]
		if suffix != name {
			name = strings.TrimSuffix(name, suffix)
		}
	}
	return Success(name + "\n")
}

// Dirname strips the last component from a path.
func Dirname(ctx *Context) Result {
	if len(ctx.Argv) == 0 {
		return MissingOperand("dirname")
	}
	return Success(filepath.Dir(strings.TrimRight(ctx.Argv[0], "/")) + "\n")
}

func init() {
	addCmd("basename", Basename)
	addCmd("dirname", Dirname)
}
