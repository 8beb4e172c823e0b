// Command forge is a local discipline tracker: tasks, commitments, and a
// daily integrity score kept in a SQLite database.
package main

import (
	"os"

	"github.com/roach88/forge/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
