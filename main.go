package main

import (
	"fmt"
	"os"

	"github.com/packagesmith/packagesmith/internal/cli"
	"github.com/packagesmith/packagesmith/internal/provision"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		// The runner prints its own failure report.
		if !provision.IsReported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
