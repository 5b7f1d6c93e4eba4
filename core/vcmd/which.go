package vcmd

import (
	"os/exec"
	"strings"
)

// Which resolves command names against the host PATH. Exit code 1 when
// any name is missing. Virtual-table membership is deliberately not
// consulted: which answers what would run once virtual dispatch is
// disabled.
func Which(ctx *Context) Result {
	if len(ctx.Argv) == 0 {
		return MissingOperand("which")
	}

	var out strings.Builder
	foundAll := true

	for _, name := range ctx.Argv {
		if strings.HasPrefix(name, "-") {
			continue
		}
		path, err := exec.LookPath(name)
		if err != nil {
			foundAll = false
			continue
		}
		out.WriteString(path + "\n")
	}

	switch {
	case out.Len() == 0:
		return ErrorCode("", 1)
	case !foundAll:
		return Result{Stdout: out.String(), Code: 1}
	default:
		return Success(out.String())
	}
}

func init() {
	addCmd("which", Which)
}
