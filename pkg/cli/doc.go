// Package cli provides common utilities for the telephone command-line tool.
//
// This package includes:
//   - Configuration management (named provider contexts)
//   - Output formatting (JSON, YAML, raw)
//   - Request file loading (YAML/JSON)
//   - Terminal styling for the game viewer
//
// Configuration is stored in the ~/.telephone/ directory, supporting
// multiple contexts similar to kubectl.
//
// Example usage:
//
//	cfg, err := cli.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	ctx, err := cfg.ResolveContext("")
//	if err != nil {
//	    return err
//	}
//	cli.Output(result, cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    File:   outputPath,
//	})
package cli
