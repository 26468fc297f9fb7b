// Command vecsh runs SQL against an in-process SQLite database with the
// vecset functions and virtual tables registered.
package main

import (
	"os"
)

// Build information injected via ldflags at build time.
var version = "dev"

func main() {
	root := newRootCmd(os.Stdout)
	root.Version = version
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
