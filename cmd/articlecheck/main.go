// Package main is the entry point of the articlecheck CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/articlecheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
