// Command fnordsql is the command-line front end for the fnordsql SQL
// parser: parse a statement once, or drive it interactively.
package main

import (
	"fmt"
	"os"

	"github.com/lswen/fnordmetric/internal/cliapp"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	cliapp.Version = version
	_ = buildDate

	if err := cliapp.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
