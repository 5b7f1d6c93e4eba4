package vcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Cp copies files. -r copies directories recursively. When the
// destination is an existing directory, sources are copied into it.
func Cp(ctx *Context) Result {
	cmd := &SimpleCommand{
		Use:   "cp [-r] SOURCE... DEST",
		Short: "Copy files and directories.",
	}
	opt := cmd.Flags()
	recursive := opt.Bool('r', "copy directories recursively")

	return cmd.Run(ctx, func(args []string) Result {
		if len(args) < 2 {
			return MissingOperand("cp")
		}

		sources, dest := args[:len(args)-1], args[len(args)-1]
		destResolved := ctx.Resolve(dest)
		destInfo, destErr := ctx.Fs().Stat(destResolved)
		destIsDir := destErr == nil && destInfo.IsDir()

		if len(sources) > 1 && !destIsDir {
			return Error(fmt.Sprintf("cp: target '%s' is not a directory\n", dest))
		}

		for _, src := range sources {
			if ctx.IsCancelled() {
				return Cancelled()
			}

			srcResolved := ctx.Resolve(src)
			info, err := ctx.Fs().Stat(srcResolved)
			if err != nil {
				return Error(fmt.Sprintf("cp: cannot stat '%s': No such file or directory\n", src))
			}

			target := destResolved
			if destIsDir {
				target = filepath.Join(destResolved, filepath.Base(srcResolved))
			}

			if info.IsDir() {
				if !*recursive {
					return Error(fmt.Sprintf("cp: -r not specified; omitting directory '%s'\n", src))
				}
				if err := copyTree(ctx.Fs(), srcResolved, target); err != nil {
					return Error(fmt.Sprintf("cp: cannot copy '%s': %v\n", src, err))
				}
				continue
			}

			if err := copyFile(ctx.Fs(), srcResolved, target, info.Mode()); err != nil {
				return Error(fmt.Sprintf("cp: cannot copy '%s': %v\n", src, err))
			}
		}

		return SuccessEmpty()
	})
}

func copyFile(fs afero.Fs, src, dst string, mode os.FileMode) error {
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, dst, data, mode)
}

func copyTree(fs afero.Fs, src, dst string) error {
	return afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return fs.MkdirAll(target, info.Mode())
		}
		return copyFile(fs, path, target, info.Mode())
	})
}

func init() {
	addCmd("cp", Cp)
}
