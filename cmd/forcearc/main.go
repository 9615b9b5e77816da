package main

import (
	"os"

	"github.com/forcearc/forcearc/internal/adapters/driving/cli"
)

// set by the release build
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
