// Package main provides the telephone CLI tool.
//
// Usage:
//
//	telephone [flags] <command> [args]
//
// Commands:
//
//	play     - Run a telephone game from an initial prompt
//	image    - One-shot image generation and description
//	oracle   - Past-life fortune telling
//	runs     - Browse recorded game runs
//	config   - Configuration management
//
// Configuration:
//
//	The CLI stores configuration in ~/.telephone/
//	Use 'telephone config' commands to manage contexts.
package main

import (
	"fmt"
	"os"

	"github.com/driftworks/telephone/cmd/telephone/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
