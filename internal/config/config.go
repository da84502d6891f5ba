package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bottlerocket-os/settings-sdk-go/internal/branding"
)

const fileType = "yaml"

// Configuration keys.
const (
	KeyLogLevel      = "log.level"
	KeyOutputFormat  = "output.format"
	KeyOutputCompact = "output.compact"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultLogLevel keeps stderr quiet unless something goes wrong.
const DefaultLogLevel = "WARNING"

// flagKeys maps configuration keys to the flags that override them.
var flagKeys = map[string]string{
	KeyLogLevel:      "log-level",
	KeyOutputFormat:  "output",
	KeyOutputCompact: "compact",
}

// Config is the resolved configuration of one invocation.
type Config struct {
	LogLevel      string
	OutputFormat  string
	OutputCompact bool

	v *viper.Viper
}

// Path returns the config file to read. An explicit path wins; otherwise the
// SETTINGS_EXTENSION_CONFIG environment variable is consulted. An empty result
// means no file.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv(branding.EnvVar("CONFIG"))
}

// Load resolves configuration. Flags in flags that were set on the command
// line take precedence over environment variables, which take precedence
// over the YAML file at path. path and flags may be empty.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyOutputFormat, FormatJSON)
	v.SetDefault(KeyOutputCompact, false)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(fileType)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	cfg := &Config{
		LogLevel:      v.GetString(KeyLogLevel),
		OutputFormat:  strings.ToLower(v.GetString(KeyOutputFormat)),
		OutputCompact: v.GetBool(KeyOutputCompact),
		v:             v,
	}

	if cfg.OutputFormat != FormatJSON && cfg.OutputFormat != FormatYAML {
		return nil, fmt.Errorf("invalid %s %q: must be %q or %q", KeyOutputFormat, cfg.OutputFormat, FormatJSON, FormatYAML)
	}
	return cfg, nil
}

// Get returns a config value by key. Returns empty string if not set.
func (c *Config) Get(key string) string {
	return c.v.GetString(key)
}

// Keys returns every known configuration key, sorted.
func (c *Config) Keys() []string {
	keys := c.v.AllKeys()
	slices.Sort(keys)
	return keys
}
