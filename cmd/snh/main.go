package main

import "github.com/simbashlog/notify-helper/cmd/snh/commands"

func main() {
	commands.Execute()
}
