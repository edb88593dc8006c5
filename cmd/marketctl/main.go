package main

import "github.com/viralforge/campaign-marketplace/cmd/marketctl/commands"

func main() {
	commands.Execute()
}
