package main

import (
	"fmt"
	"os"

	"github.com/pathsieve/pathsieve/internal/cli"
	"github.com/pathsieve/pathsieve/internal/glob"
)

func main() {
	// sink pins warning output for end-to-end assertions: one stable line
	// per warning, on stdout instead of stderr.
	sink := func(pattern string, w glob.Warning) {
		fmt.Printf("warning: %s in %s at byte %d\n", w.Construct, pattern, w.Pos)
	}

	if err := cli.Execute(sink); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
