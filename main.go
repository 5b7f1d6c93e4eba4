package main

import "github.com/cmdstream/cmdstream/cmd"

func main() {
	cmd.Execute()
}
