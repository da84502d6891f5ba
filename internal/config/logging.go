package config

import (
	"fmt"
	"io"

	"github.com/juju/loggo/v2"

	"github.com/bottlerocket-os/settings-sdk-go/internal/branding"
)

// ConfigureLogging sends SDK log output to w at the given level.
func ConfigureLogging(w io.Writer, level string) error {
	lvl, ok := loggo.ParseLevel(level)
	if !ok {
		return fmt.Errorf("invalid log level %q", level)
	}

	if _, err := loggo.ReplaceDefaultWriter(loggo.NewSimpleWriter(w, loggo.DefaultFormatter)); err != nil {
		return fmt.Errorf("replacing log writer: %w", err)
	}
	if err := loggo.ConfigureLoggers(branding.LoggerRoot() + "=" + lvl.String()); err != nil {
		return fmt.Errorf("configuring loggers: %w", err)
	}
	return nil
}
