// Package main provides the entry point for overlayctl.
//
// Usage:
//
//	overlayctl [command] [flags]
//
// Without a command it starts the terminal host.
package main

import (
	"fmt"
	"os"

	"github.com/riordanpawley/overlayctl/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}
