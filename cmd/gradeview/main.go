package main

import (
	"os"

	"github.com/wonny/gradeview/cmd/gradeview/commands"
)

// main is the entry point for the gradeview CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
