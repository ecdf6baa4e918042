package main

import (
	"os"

	"eightyseven/cmd/eightyseven/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
