// Command camdiag evaluates the camera permission model from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/diagnostic/cmd/camdiag/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
