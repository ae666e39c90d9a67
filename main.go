package main

import "github.com/user/vcut/cmd"

func main() {
	cmd.Execute()
}
