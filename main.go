package main

import "github.com/benoctopus/quartertime/cmd"

func main() {
	cmd.Execute()
}
