// The main package for the uaforge executable.
package main

import (
	"fmt"
	"os"

	"github.com/uaforge/uaforge/cmd"
)

// main defers all execution to the Cobra CLI.
func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
