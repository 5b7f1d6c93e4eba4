package vcmd

import (
	"fmt"
	"os"
)

// Rm removes files. -r removes directories recursively, -f ignores
// missing operands.
func Rm(ctx *Context) Result {
	cmd := &SimpleCommand{
		Use:   "rm [-rf] FILE...",
		Short: "Remove files or directories.",
	}
	opt := cmd.Flags()
	recursive := opt.Bool('r', "remove directories and their contents recursively")
	force := opt.Bool('f', "ignore nonexistent files, never prompt")

	return cmd.Run(ctx, func(files []string) Result {
		if len(files) == 0 {
			if *force {
				return SuccessEmpty()
			}
			return MissingOperand("rm")
		}

		for _, file := range files {
			if ctx.IsCancelled() {
				return Cancelled()
			}

			resolved := ctx.Resolve(file)
			info, err := ctx.Fs().Stat(resolved)
			if err != nil {
				if *force {
					continue
				}
				return Error(fmt.Sprintf("rm: cannot remove '%s': No such file or directory\n", file))
			}

			if info.IsDir() && !*recursive {
				return Error(fmt.Sprintf("rm: cannot remove '%s': Is a directory\n", file))
			}

			if info.IsDir() {
				err = ctx.Fs().RemoveAll(resolved)
			} else {
				err = ctx.Fs().Remove(resolved)
			}
			if err != nil && !os.IsNotExist(err) {
				return Error(fmt.Sprintf("rm: cannot remove '%s': %v\n", file, err))
			}
		}

		return SuccessEmpty()
	})
}

func init() {
	addCmd("rm", Rm)
}
