package vcmd

import "strings"

var echoUnescaper = strings.NewReplacer(
	`\n`, "\n",
	`\t`, "\t",
	`\r`, "\r",
	`\\`, `\`,
)

func echoFlagWord(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	for _, c := range arg[1:] {
		if c != 'n' && c != 'e' && c != 'E' {
			return false
		}
	}
	return true
}

// Echo prints its arguments joined by spaces. Supports -n (no trailing
// newline), -e (interpret backslash escapes) and -E (disable escapes).
func Echo(ctx *Context) Result {
	noNewline := false
	interpretEscapes := false

	args := ctx.Argv
	for len(args) > 0 && echoFlagWord(args[0]) {
		for _, c := range args[0][1:] {
			switch c {
			case 'n':
				noNewline = true
			case 'e':
				interpretEscapes = true
			case 'E':
				interpretEscapes = false
			}
		}
		args = args[1:]
	}

	out := strings.Join(args, " ")
	if interpretEscapes {
		out = echoUnescaper.Replace(out)
	}
	if !noNewline {
		out += "\n"
	}
	return Success(out)
}

func init() {
	addCmd("echo", Echo)
}
