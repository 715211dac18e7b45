package main

import "github.com/organai/organai/cmd"

func main() {
	cmd.Execute()
}
