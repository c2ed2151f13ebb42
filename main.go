package main

import "github.com/pegstep/pegstep/cmd"

func main() {
	cmd.Execute()
}
