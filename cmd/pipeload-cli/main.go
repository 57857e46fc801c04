// Package main is the entry point for the pipeload command-line tool.
package main

import (
	"os"

	"github.com/piwi3910/PipeLoad/cmd/pipeload-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
