// Package config resolves the runtime settings of an extension binary from
// command-line flags, SETTINGS_EXTENSION_* environment variables and an
// optional YAML file, and configures logging from them.
package config
