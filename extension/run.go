package extension

import (
	"os"

	"github.com/bottlerocket-os/settings-sdk-go/internal/cli"
)

// BuildInfo identifies the build of an extension binary. Values are usually
// injected with -ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Run parses the process arguments, serves the requested command and prints
// its result to stdout. Errors are printed to stderr and returned; the caller
// decides the exit status.
func (e *SettingsExtension) Run(info BuildInfo) error {
	return e.RunArgs(os.Args[1:], info)
}

// RunArgs is Run with explicit arguments.
func (e *SettingsExtension) RunArgs(args []string, info BuildInfo) error {
	return cli.Execute(e, cli.Options{
		Args:    args,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Version: info.Version,
		Commit:  info.Commit,
		Date:    info.Date,
	})
}
