// Command itinctl is the operator CLI for the itinerary service: it applies
// schema migrations and reports lodging coverage from the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "itinctl:", err)
		os.Exit(1)
	}
}
