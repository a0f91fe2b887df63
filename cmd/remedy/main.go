// Package main provides the entry point for the remedy CLI.
package main

import (
	"os"

	"github.com/randalmurphal/remedy/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
