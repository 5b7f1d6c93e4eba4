package vcmd

import (
	"fmt"
	"path/filepath"
)

// Mv renames files or moves them into an existing directory.
func Mv(ctx *Context) Result {
	if len(ctx.Argv) < 2 {
		return MissingOperand("mv")
	}

	args := ctx.Argv
	sources, dest := args[:len(args)-1], args[len(args)-1]
	destResolved := ctx.Resolve(dest)
	destInfo, destErr := ctx.Fs().Stat(destResolved)
	destIsDir := destErr == nil && destInfo.IsDir()

	if len(sources) > 1 && !destIsDir {
		return Error(fmt.Sprintf("mv: target '%s' is not a directory\n", dest))
	}

	for _, src := range sources {
		srcResolved := ctx.Resolve(src)
		if _, err := ctx.Fs().Stat(srcResolved); err != nil {
			return Error(fmt.Sprintf("mv: cannot stat '%s': No such file or directory\n", src))
		}

		target := destResolved
		if destIsDir {
			target = filepath.Join(destResolved, filepath.Base(srcResolved))
		}

		if err := ctx.Fs().Rename(srcResolved, target); err != nil {
			return Error(fmt.Sprintf("mv: cannot move '%s': %v\n", src, err))
		}
	}

	return SuccessEmpty()
}

func init() {
	addCmd("mv", Mv)
}
