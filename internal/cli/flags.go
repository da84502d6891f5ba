package cli

import (
	"fmt"
	"io"

	"github.com/bottlerocket-os/settings-sdk-go/model"
)

const stdinMarker = "-"

// jsonValue is a flag holding a JSON exchange value. The marker "-" defers
// reading the value from stdin until the command runs.
type jsonValue struct {
	raw       string
	value     model.Value
	fromStdin bool
}

func (j *jsonValue) String() string { return j.raw }

func (j *jsonValue) Type() string { return "json" }

func (j *jsonValue) Set(s string) error {
	j.raw = s
	if s == stdinMarker {
		j.fromStdin = true
		return nil
	}
	v, err := model.ParseValue([]byte(s))
	if err != nil {
		return fmt.Errorf("parsing CLI input as JSON: %w", err)
	}
	j.value = v
	return nil
}

// resolveStdin reads the value of at most one stdin-backed flag.
func resolveStdin(stdin io.Reader, flags map[string]*jsonValue) error {
	var pending string
	for name, f := range flags {
		if !f.fromStdin {
			continue
		}
		if pending != "" {
			return fmt.Errorf("only one of --%s and --%s may be read from stdin", pending, name)
		}
		pending = name
	}
	if pending == "" {
		return nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("reading --%s from stdin: %w", pending, err)
	}
	v, err := model.ParseValue(data)
	if err != nil {
		return fmt.Errorf("parsing --%s from stdin: %w", pending, err)
	}
	flags[pending].value = v
	return nil
}
