// Package main provides weeknotes, an interactive notebook with one list of
// notes per day of the week.
package main

import (
	"os"
	"strings"

	"github.com/calvinalkan/weeknotes/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	exitCode := cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env)

	os.Exit(exitCode)
}
