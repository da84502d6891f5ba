package extclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/bottlerocket-os/settings-sdk-go/internal/branding"
	"github.com/bottlerocket-os/settings-sdk-go/model"
)

var logger = loggo.GetLogger("settings.extclient")

// ExtensionFailed is returned when the extension binary exits unsuccessfully.
const ExtensionFailed = errors.ConstError("settings extension failed")

// Client runs one extension binary.
type Client struct {
	// Path is the extension binary.
	Path string
	// Env, if non-nil, replaces the environment of the extension process.
	Env []string
}

// New returns a client for the binary at path.
func New(path string) *Client {
	return &Client{Path: path}
}

// Set asks the extension for the value to store when value is proposed for
// version. current may be nil.
func (c *Client) Set(ctx context.Context, version string, value, current model.Value) (model.Value, error) {
	args := []string{"set", "--setting-version", version}
	args, err := appendValue(args, "--value", value)
	if err != nil {
		return nil, err
	}
	if args, err = appendValue(args, "--current-value", current); err != nil {
		return nil, err
	}

	out, err := c.run(ctx, args)
	if err != nil {
		return nil, err
	}
	return model.ParseValue(out)
}

// Generate asks the extension to generate version. existingPartial and
// requiredSettings may be nil.
func (c *Client) Generate(ctx context.Context, version string, existingPartial, requiredSettings model.Value) (model.GenerateResult[model.Value, model.Value], error) {
	var result model.GenerateResult[model.Value, model.Value]

	args := []string{"generate", "--setting-version", version}
	args, err := appendValue(args, "--existing-partial", existingPartial)
	if err != nil {
		return result, err
	}
	if args, err = appendValue(args, "--required-settings", requiredSettings); err != nil {
		return result, err
	}

	out, err := c.run(ctx, args)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(out, &result); err != nil {
		return result, fmt.Errorf("parsing generate output: %w: %w", model.SerializationMismatch, err)
	}
	return result, nil
}

// Validate asks the extension whether value is valid for version.
func (c *Client) Validate(ctx context.Context, version string, value, requiredSettings model.Value) (bool, error) {
	args := []string{"validate", "--setting-version", version}
	args, err := appendValue(args, "--value", value)
	if err != nil {
		return false, err
	}
	if args, err = appendValue(args, "--required-settings", requiredSettings); err != nil {
		return false, err
	}

	out, err := c.run(ctx, args)
	if err != nil {
		return false, err
	}
	var ok bool
	if err := json.Unmarshal(out, &ok); err != nil {
		return false, fmt.Errorf("parsing validate output: %w: %w", model.SerializationMismatch, err)
	}
	return ok, nil
}

// Migrate asks the extension to convert value from version from to version to.
func (c *Client) Migrate(ctx context.Context, value model.Value, from, to string) (model.Value, error) {
	args, err := appendValue([]string{"migrate"}, "--value", value)
	if err != nil {
		return nil, err
	}
	args = append(args, "--from-version", from, "--target-version", to)

	out, err := c.run(ctx, args)
	if err != nil {
		return nil, err
	}
	return model.ParseValue(out)
}

// appendValue adds a JSON flag to args. Absent values are left out.
func appendValue(args []string, flag string, v model.Value) ([]string, error) {
	if v == nil {
		return args, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w: %w", flag, model.SerializationMismatch, err)
	}
	return append(args, flag, string(data)), nil
}

// run executes a proto1 command and returns its stdout. Output is always
// requested as compact JSON so it does not depend on the extension's config.
func (c *Client) run(ctx context.Context, args []string) ([]byte, error) {
	full := append([]string{branding.Protocol()}, args...)
	full = append(full, "--output", "json", "--compact")

	cmd := exec.CommandContext(ctx, c.Path, full...)
	if c.Env != nil {
		cmd.Env = c.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debugf("running %s %s", c.Path, strings.Join(full, " "))
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s %s: %w: %s", ExtensionFailed, filepath.Base(c.Path), args[0], err, msg)
		}
		return nil, fmt.Errorf("%w: %s %s: %w", ExtensionFailed, filepath.Base(c.Path), args[0], err)
	}
	return stdout.Bytes(), nil
}

// Find locates the binary of the extension serving setting name. The binary
// is named "<name>-settings". It checks the directory named by
// SETTINGS_EXTENSION_DIR first, then the directory of the running binary,
// then PATH.
func Find(name string) (string, error) {
	binary := name + "-settings"

	if dir := os.Getenv(branding.EnvVar("DIR")); dir != "" {
		path := filepath.Join(dir, binary)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if exe, err := os.Executable(); err == nil {
		path := filepath.Join(filepath.Dir(exe), binary)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("cannot find %s: set %s or add it to PATH", binary, branding.EnvVar("DIR"))
	}
	return path, nil
}
