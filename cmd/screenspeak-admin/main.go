package main

import "screenspeak/cmd/screenspeak-admin/command"

func main() {
	command.Execute()
}
