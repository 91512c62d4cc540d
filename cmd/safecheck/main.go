package main

import (
	"os"

	"safecheck/cmd/safecheck/commands"
)

func main() {
	root := commands.NewRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
