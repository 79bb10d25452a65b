// Package main provides blocksort, the verification and timing harness
// for the in-place sorter.
package main

import (
	"os"
	"strings"

	"blocksort/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	os.Exit(cli.Run(os.Stdout, os.Stderr, os.Args, env))
}
