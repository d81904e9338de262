// Command nexusctl seeds, backs up, restores and inspects the MIR Nexus store.
package main

import (
	"fmt"
	"os"

	"nexus/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
