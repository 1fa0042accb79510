// Command sizetree shows the disk usage below a path as an expandable tree.
package main

import (
	"fmt"
	"os"

	"github.com/SaumitraLohokare/sizetree/internal/cli"
)

// version is set at build time.
//
//nolint:gochecknoglobals // Set by the linker
var version = "unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sizetree: %v\n", err)

		os.Exit(1)
	}
}
