package vcmd

import "strconv"

// Test evaluates a conditional expression and reports it via exit
// code, producing no output. Supports the common unary file and string
// operators and binary string/integer comparisons.
func Test(ctx *Context) Result {
	if len(ctx.Argv) == 0 {
		return ErrorCode("", 1)
	}
	if evalTestExpr(ctx, ctx.Argv) {
		return SuccessEmpty()
	}
	return ErrorCode("", 1)
}

func evalTestExpr(ctx *Context, args []string) bool {
	switch len(args) {
	case 0:
		return false
	case 1:
		return args[0] != ""
	case 2:
		return evalUnary(ctx, args[0], args[1])
	case 3:
		return evalBinary(args[0], args[1], args[2])
	default:
		if args[0] == "!" {
			return !evalTestExpr(ctx, args[1:])
		}
		return false
	}
}

func evalUnary(ctx *Context, op, arg string) bool {
	switch op {
	case "-z":
		return arg == ""
	case "-n":
		return arg != ""
	case "!":
		return !evalTestExpr(ctx, []string{arg})
	}

	info, err := ctx.Fs().Stat(ctx.Resolve(arg))
	switch op {
	case "-e", "-r", "-w", "-x":
		return err == nil
	case "-f":
		return err == nil && info.Mode().IsRegular()
	case "-d":
		return err == nil && info.IsDir()
	case "-s":
		return err == nil && info.Size() > 0
	default:
		return false
	}
}

func evalBinary(left, op, right string) bool {
	switch op {
	case "=", "==":
		return left == right
	case "!=":
		return left != right
	}

	// Numeric comparisons treat unparseable operands as zero.
	l, _ := strconv.ParseInt(left, 10, 64)
	r, _ := strconv.ParseInt(right, 10, 64)
	switch op {
	case "-eq":
		return l == r
	case "-ne":
		return l != r
	case "-lt":
		return l < r
	case "-le":
		return l <= r
	case "-gt":
		return l > r
	case "-ge":
		return l >= r
	default:
		return false
	}
}

func init() {
	addCmd("test", Test)
}
