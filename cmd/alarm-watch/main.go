package main

import "github.com/oshokin/alarm-clock/cmd/alarm-watch/cmd"

func main() {
	cmd.Execute()
}
