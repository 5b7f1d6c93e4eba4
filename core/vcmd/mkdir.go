package vcmd

import (
	"fmt"
	"os"
)

// Mkdir creates directories. -p creates parents and tolerates existing
// directories.
func Mkdir(ctx *Context) Result {
	cmd := &SimpleCommand{
		Use:   "mkdir [-p] DIRECTORY...",
		Short: "Create directories.",
	}
	opt := cmd.Flags()
	parents := opt.Bool('p', "make parent directories as needed")

	return cmd.Run(ctx, func(dirs []string) Result {
		if len(dirs) == 0 {
			return MissingOperand("mkdir")
		}

		for _, dir := range dirs {
			resolved := ctx.Resolve(dir)

			if *parents {
				if err := ctx.Fs().MkdirAll(resolved, 0755); err != nil {
					return Error(fmt.Sprintf("mkdir: cannot create directory '%s': %v\n", dir, err))
				}
				continue
			}

			if _, err := ctx.Fs().Stat(resolved); err == nil {
				return Error(fmt.Sprintf("mkdir: cannot create directory '%s': File exists\n", dir))
			}
			if err := ctx.Fs().Mkdir(resolved, 0755); err != nil {
				if os.IsNotExist(err) {
					return Error(fmt.Sprintf("mkdir: cannot create directory '%s': No such file or directory\n", dir))
				}
				return Error(fmt.Sprintf("mkdir: cannot create directory '%s': %v\n", dir, err))
			}
		}

		return SuccessEmpty()
	})
}

func init() {
	addCmd("mkdir", Mkdir)
}
