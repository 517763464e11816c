package main

import "logbook/cmd/logbook/command"

func main() {
	command.Execute()
}
