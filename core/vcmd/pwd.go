package vcmd

// Pwd prints the logical working directory.
func Pwd(ctx *Context) Result {
	return Success(ctx.Cwd() + "\n")
}

func init() {
	addCmd("pwd", Pwd)
}
