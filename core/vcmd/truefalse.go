package vcmd

// True does nothing, successfully.
func True(*Context) Result {
	return SuccessEmpty()
}

// False does nothing, unsuccessfully.
func False(*Context) Result {
	return ErrorCode("", 1)
}

func init() {
	addCmd("true", True)
	addCmd("false", False)
}
