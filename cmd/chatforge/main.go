package main

import "github.com/mgarrido/chatforge/cmd/chatforge/commands"

func main() {
	commands.Execute()
}
