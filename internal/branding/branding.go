// Package branding names the SDK: its protocol command, environment prefix
// and logger root. The embedded branding.yaml overrides the built-in values.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	SDKName     string `yaml:"sdk_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	EnvPrefix   string `yaml:"env_prefix"`
	Protocol    string `yaml:"protocol"`
	LoggerRoot  string `yaml:"logger_root"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			SDKName:     "settings-sdk-go",
			DisplayName: "Settings Extension",
			Description: "Versioned settings extension",
			EnvPrefix:   "SETTINGS_EXTENSION",
			Protocol:    "proto1",
			LoggerRoot:  "settings",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// SDKName is reported by the version command.
func SDKName() string { load(); return defaults.SDKName }

// DisplayName and Description appear in the root command help.
func DisplayName() string { load(); return defaults.DisplayName }

func Description() string { load(); return defaults.Description }

// EnvPrefix prefixes every environment variable read by the SDK.
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// Protocol is the name of the command grouping the protocol operations.
func Protocol() string { load(); return defaults.Protocol }

// LoggerRoot is the parent of every SDK logger.
func LoggerRoot() string { load(); return defaults.LoggerRoot }

// EnvVar prefixes suffix with EnvPrefix: EnvVar("config") is
// "SETTINGS_EXTENSION_CONFIG".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
