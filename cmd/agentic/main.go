// Package main is the entry point for the agentic chat CLI.
package main

import (
	"fmt"
	"os"

	"github.com/andreinakagawa/agentic-ai-basic-cli/cmd/agentic/commands"
)

// version is injected at build time via ldflags.
var version = "dev"

func main() {
	rootCmd := commands.NewRootCmd(version)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
