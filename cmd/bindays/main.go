// Command bindays mirrors bin collection dates into a Google Calendar.
package main

import (
	"os"

	"github.com/custodia-labs/bindays/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetAppBuilder(build)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
