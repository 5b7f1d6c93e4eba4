package vcmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Ls lists directory contents. Supports -a (include dotfiles) and -l
// (mode, size, name per line).
func Ls(ctx *Context) Result {
	cmd := &SimpleCommand{
		Use:   "ls [-al] [FILE]...",
		Short: "List directory contents.",
	}
	opt := cmd.Flags()
	all := opt.Bool('a', "do not hide entries starting with .")
	long := opt.Bool('l', "use a long listing format")

	return cmd.Run(ctx, func(paths []string) Result {
		if len(paths) == 0 {
			paths = []string{"."}
		}

		var out strings.Builder
		for _, p := range paths {
			if ctx.IsCancelled() {
				return Cancelled()
			}

			resolved := ctx.Resolve(p)
			info, err := ctx.Fs().Stat(resolved)
			if err != nil {
				if os.IsNotExist(err) {
					return Error(fmt.Sprintf("ls: cannot open '%s': No such file or directory\n", p))
				}
				return Error(fmt.Sprintf("ls: cannot open '%s': %v\n", p, err))
			}

			if !info.IsDir() {
				if *long {
					out.WriteString(formatEntry(info.Mode().String(), info.Size(), info.Name()))
				} else {
					out.WriteString(info.Name() + "\n")
				}
				continue
			}

			dir, err := ctx.Fs().Open(resolved)
			if err != nil {
				return Error(fmt.Sprintf("ls: cannot open '%s': %v\n", p, err))
			}
			entries, err := dir.Readdir(-1)
			dir.Close()
			if err != nil {
				return Error(fmt.Sprintf("ls: cannot open '%s': %v\n", p, err))
			}

			sort.Slice(entries, func(i, j int) bool {
				return entries[i].Name() < entries[j].Name()
			})

			for _, entry := range entries {
				name := entry.Name()
				if !*all && strings.HasPrefix(name, ".") {
					continue
				}
				if *long {
					out.WriteString(formatEntry(entry.Mode().String(), entry.Size(), name))
				} else {
					out.WriteString(name + "\n")
				}
			}
		}

		return Success(out.String())
	})
}

func formatEntry(mode string, size int64, name string) string {
	return fmt.Sprintf("%s %8d %s\n", mode, size, name)
}

func init() {
	addCmd("ls", Ls)
}
