package vcmd

import (
	"fmt"
	"os"
	"time"
)

// Touch creates empty files or updates modification times.
func Touch(ctx *Context) Result {
	if len(ctx.Argv) == 0 {
		return MissingOperand("touch")
	}

	now := time.Now()
	for _, file := range ctx.Argv {
		resolved := ctx.Resolve(file)

		if _, err := ctx.Fs().Stat(resolved); err == nil {
			if err := ctx.Fs().Chtimes(resolved, now, now); err != nil {
				return Error(fmt.Sprintf("touch: cannot touch '%s': %v\n", file, err))
			}
			continue
		}

		fd, err := ctx.Fs().OpenFile(resolved, os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return Error(fmt.Sprintf("touch: cannot touch '%s': %v\n", file, err))
		}
		fd.Close()
	}

	return SuccessEmpty()
}

func init() {
	addCmd("touch", Touch)
}
