package main

import (
	"fmt"
	"os"

	"github.com/bottlerocket-os/settings-sdk-go/extension"
	"github.com/bottlerocket-os/settings-sdk-go/samples/motd"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ext, err := motd.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := ext.Run(extension.BuildInfo{Version: version, Commit: commit, Date: date}); err != nil {
		os.Exit(1)
	}
}
