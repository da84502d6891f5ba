package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/bottlerocket-os/settings-sdk-go/internal/config"
	"github.com/bottlerocket-os/settings-sdk-go/model"
)

// printResult writes v to the command's stdout in the configured format.
func (a *app) printResult(cmd *cobra.Command, v any) error {
	format, compact := config.FormatJSON, false
	if a.cfg != nil {
		format, compact = a.cfg.OutputFormat, a.cfg.OutputCompact
	}

	out, err := render(v, format, compact)
	if err != nil {
		return fmt.Errorf("writing settings result: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func render(v any, format string, compact bool) ([]byte, error) {
	if format == config.FormatYAML {
		// Go through the JSON form so custom JSON encodings (GenerateResult)
		// render the same way in both formats.
		generic, err := model.ToValue(v)
		if err != nil {
			return nil, err
		}
		out, err := yaml.Marshal(yamlValue(generic))
		if err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return out, nil
	}

	var out []byte
	var err error
	if compact {
		out, err = json.Marshal(v)
	} else {
		out, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// yamlValue replaces the json.Number leaves of v with untagged YAML number
// scalars, keeping the digits exactly as they were decoded.
func yamlValue(v model.Value) any {
	switch v := v.(type) {
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(string(v), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(v)}
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = yamlValue(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = yamlValue(val)
		}
		return out
	default:
		return v
	}
}
