package main

import "github.com/example/timeclock/cmd"

func main() {
	cmd.Execute()
}
