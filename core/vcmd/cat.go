package vcmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// Cat concatenates files to stdout. With no arguments it echoes the
// literal stdin content the pipeline fed it.
func Cat(ctx *Context) Result {
	if len(ctx.Argv) == 0 {
		if ctx.HasStdin {
			return Success(ctx.Stdin)
		}
		return SuccessEmpty()
	}

	var outputs strings.Builder
	for _, file := range ctx.Argv {
		if ctx.IsCancelled() {
			return Cancelled()
		}

		resolved := ctx.Resolve(file)
		info, err := ctx.Fs().Stat(resolved)
		switch {
		case os.IsNotExist(err):
			return Error(fmt.Sprintf("cat: %s: No such file or directory\n", file))
		case err != nil:
			return Error(fmt.Sprintf("cat: %s: %v\n", file, err))
		case info.IsDir():
			return Error(fmt.Sprintf("cat: %s: Is a directory\n", file))
		}

		content, err := afero.ReadFile(ctx.Fs(), resolved)
		if err != nil {
			return Error(fmt.Sprintf("cat: %s: %v\n", file, err))
		}
		outputs.Write(content)
	}

	return Success(outputs.String())
}

func init() {
	addCmd("cat", Cat)
}
