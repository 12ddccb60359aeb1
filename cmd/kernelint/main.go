// Package main provides the kernelint command-line interface.
package main

import (
	"os"

	"github.com/newton-physics/kernelint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
