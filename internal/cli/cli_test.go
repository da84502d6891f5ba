package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/bottlerocket-os/settings-sdk-go/model"
)

// fakeExtension records the arguments of the last call and returns canned
// results.
type fakeExtension struct {
	models []model.Model

	gotVersion string
	gotValue   model.Value
	gotOther   model.Value
	gotFrom    string
	gotTo      string

	result   model.Value
	generate model.GenerateResult[model.Value, model.Value]
	valid    bool
	err      error
}

func (f *fakeExtension) Name() string           { return "motd" }
func (f *fakeExtension) Models() []model.Model { return f.models }

func (f *fakeExtension) Set(version string, value, current model.Value) (model.Value, error) {
	f.gotVersion, f.gotValue, f.gotOther = version, value, current
	return f.result, f.err
}

func (f *fakeExtension) Generate(version string, existingPartial, requiredSettings model.Value) (model.GenerateResult[model.Value, model.Value], error) {
	f.gotVersion, f.gotValue, f.gotOther = version, existingPartial, requiredSettings
	return f.generate, f.err
}

func (f *fakeExtension) Validate(version string, value, requiredSettings model.Value) (bool, error) {
	f.gotVersion, f.gotValue, f.gotOther = version, value, requiredSettings
	return f.valid, f.err
}

func (f *fakeExtension) Migrate(value model.Value, from, to string) (model.Value, error) {
	f.gotValue, f.gotFrom, f.gotTo = value, from, to
	return f.result, f.err
}

type run struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
	err    error
}

func execute(t *testing.T, ext Extension, stdin string, args ...string) *run {
	t.Helper()
	r := &run{}
	r.err = Execute(ext, Options{
		Args:    args,
		Stdin:   strings.NewReader(stdin),
		Stdout:  &r.stdout,
		Stderr:  &r.stderr,
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2026-01-01",
	})
	return r
}

func TestSet(t *testing.T) {
	ext := &fakeExtension{result: map[string]any{"motd": "hi"}}

	r := execute(t, ext, "", "proto1", "set", "--setting-version", "v1", "--value", `{"motd":"hi"}`, "--current-value", `{"motd":"old"}`)
	if r.err != nil {
		t.Fatalf("Execute error: %v (stderr: %s)", r.err, r.stderr.String())
	}
	if ext.gotVersion != "v1" {
		t.Errorf("version = %q, want %q", ext.gotVersion, "v1")
	}
	if want := map[string]any{"motd": "hi"}; !reflect.DeepEqual(ext.gotValue, model.Value(want)) {
		t.Errorf("value = %v, want %v", ext.gotValue, want)
	}
	if want := map[string]any{"motd": "old"}; !reflect.DeepEqual(ext.gotOther, model.Value(want)) {
		t.Errorf("current = %v, want %v", ext.gotOther, want)
	}
	if got, want := r.stdout.String(), "{\n  \"motd\": \"hi\"\n}\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestSet_OptionalCurrentAbsent(t *testing.T) {
	ext := &fakeExtension{result: map[string]any{}}
	r := execute(t, ext, "", "proto1", "set", "--setting-version", "v1", "--value", `{}`)
	if r.err != nil {
		t.Fatalf("Execute error: %v", r.err)
	}
	if ext.gotOther != nil {
		t.Errorf("current = %v, want nil", ext.gotOther)
	}
}

func TestGenerate(t *testing.T) {
	var v model.Value = map[string]any{"motd": "generated"}
	ext := &fakeExtension{generate: model.Complete[model.Value](&v)}

	r := execute(t, ext, "", "--compact", "proto1", "generate", "--setting-version", "v2", "--required-settings", `{"hostname":"box"}`)
	if r.err != nil {
		t.Fatalf("Execute error: %v", r.err)
	}
	if ext.gotValue != nil {
		t.Errorf("existing partial = %v, want nil", ext.gotValue)
	}
	if got, want := r.stdout.String(), "{\"Complete\":{\"motd\":\"generated\"}}\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestValidate(t *testing.T) {
	ext := &fakeExtension{valid: true}
	r := execute(t, ext, "", "proto1", "validate", "--setting-version", "v1", "--value", `{"motd":"hi"}`)
	if r.err != nil {
		t.Fatalf("Execute error: %v", r.err)
	}
	if got := r.stdout.String(); got != "true\n" {
		t.Errorf("stdout = %q, want %q", got, "true\n")
	}
}

func TestMigrate(t *testing.T) {
	ext := &fakeExtension{result: map[string]any{"motd": "hi", "person": "Sean"}}
	r := execute(t, ext, "", "proto1", "migrate", "--value", `{"motd":"hi"}`, "--from-version", "v1", "--target-version", "v2")
	if r.err != nil {
		t.Fatalf("Execute error: %v", r.err)
	}
	if ext.gotFrom != "v1" || ext.gotTo != "v2" {
		t.Errorf("migrate %q -> %q, want v1 -> v2", ext.gotFrom, ext.gotTo)
	}

	var got map[string]any
	if err := json.Unmarshal(r.stdout.Bytes(), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if got["person"] != "Sean" {
		t.Errorf("person = %v, want Sean", got["person"])
	}
}

func TestCommandError(t *testing.T) {
	ext := &fakeExtension{err: model.NoMigrationPath}
	r := execute(t, ext, "", "proto1", "migrate", "--value", `{}`, "--from-version", "v1", "--target-version", "v9")
	if !errors.Is(r.err, model.NoMigrationPath) {
		t.Fatalf("Execute error = %v, want NoMigrationPath", r.err)
	}
	if r.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", r.stdout.String())
	}
	if !strings.Contains(r.stderr.String(), "no migration path") {
		t.Errorf("stderr = %q, want the error message", r.stderr.String())
	}
}

func TestInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"malformed json", []string{"proto1", "set", "--setting-version", "v1", "--value", `{"motd":`}},
		{"missing version", []string{"proto1", "set", "--value", `{}`}},
		{"missing value", []string{"proto1", "validate", "--setting-version", "v1"}},
		{"missing target", []string{"proto1", "migrate", "--value", `{}`, "--from-version", "v1"}},
		{"unexpected argument", []string{"proto1", "generate", "--setting-version", "v1", "extra"}},
		{"bad output format", []string{"--output", "toml", "proto1", "validate", "--setting-version", "v1", "--value", `{}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := execute(t, &fakeExtension{}, "", tt.args...)
			if r.err == nil {
				t.Fatal("expected error, got nil")
			}
			if r.stderr.Len() == 0 {
				t.Error("expected error on stderr")
			}
		})
	}
}

func TestValueFromStdin(t *testing.T) {
	ext := &fakeExtension{result: map[string]any{"motd": "piped"}}
	r := execute(t, ext, `{"motd":"piped"}`, "proto1", "migrate", "--value", "-", "--from-version", "v1", "--target-version", "v1")
	if r.err != nil {
		t.Fatalf("Execute error: %v", r.err)
	}
	if want := map[string]any{"motd": "piped"}; !reflect.DeepEqual(ext.gotValue, model.Value(want)) {
		t.Errorf("value = %v, want %v", ext.gotValue, want)
	}
}

func TestValueFromStdin_OnlyOnce(t *testing.T) {
	r := execute(t, &fakeExtension{}, `{}`, "proto1", "set", "--setting-version", "v1", "--value", "-", "--current-value", "-")
	if r.err == nil {
		t.Fatal("expected error when two flags read stdin, got nil")
	}
}

func TestYAMLOutput(t *testing.T) {
	ext := &fakeExtension{result: map[string]any{"person": "Sean", "motd": "hi"}}
	r := execute(t, ext, "", "-o", "yaml", "proto1", "set", "--setting-version", "v2", "--value", `{}`)
	if r.err != nil {
		t.Fatalf("Execute error: %v", r.err)
	}
	if got, want := r.stdout.String(), "motd: hi\nperson: Sean\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestYAMLOutput_Numbers(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"int and float", `{"count":3,"ratio":1.5}`, "count: 3\nratio: 1.5\n"},
		{"nested", `{"limits":{"max":-2},"sizes":[1,2.25]}`, "limits:\n    max: -2\nsizes:\n    - 1\n    - 2.25\n"},
		{"exponent", `{"big":1e3}`, "big: 1e3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := model.ParseValue([]byte(tt.value))
			if err != nil {
				t.Fatalf("ParseValue error: %v", err)
			}
			out, err := render(v, "yaml", false)
			if err != nil {
				t.Fatalf("render error: %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("render = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestModels(t *testing.T) {
	ext := &fakeExtension{models: []model.Model{
		model.Define[struct{}, struct{}]("v1", nopModel{}, model.MigratesForwardTo("v2", same)),
		model.Define[struct{}, struct{}]("v2", nopModel{}, model.MigratesBackwardTo("v1", same)),
	}}

	r := execute(t, ext, "", "models")
	if r.err != nil {
		t.Fatalf("Execute error: %v", r.err)
	}
	lines := strings.Split(strings.TrimSpace(r.stdout.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), r.stdout.String())
	}
	if fields := strings.Fields(lines[1]); strings.Join(fields, " ") != "v1 - v2" {
		t.Errorf("row 1 = %q, want %q", lines[1], "v1 - v2")
	}
	if fields := strings.Fields(lines[2]); strings.Join(fields, " ") != "v2 v1 -" {
		t.Errorf("row 2 = %q, want %q", lines[2], "v2 v1 -")
	}
}

func TestModels_Empty(t *testing.T) {
	r := execute(t, &fakeExtension{}, "", "models")
	if r.err != nil {
		t.Fatalf("Execute error: %v", r.err)
	}
	if !strings.Contains(r.stdout.String(), "No versions registered") {
		t.Errorf("stdout = %q", r.stdout.String())
	}
}

func TestVersion(t *testing.T) {
	r := execute(t, &fakeExtension{}, "", "version", "--short")
	if r.err != nil {
		t.Fatalf("Execute error: %v", r.err)
	}
	if got := r.stdout.String(); got != "1.2.3\n" {
		t.Errorf("stdout = %q, want %q", got, "1.2.3\n")
	}

	r = execute(t, &fakeExtension{}, "", "version", "--json")
	if r.err != nil {
		t.Fatalf("Execute error: %v", r.err)
	}
	var info map[string]string
	if err := json.Unmarshal(r.stdout.Bytes(), &info); err != nil {
		t.Fatalf("version --json is not JSON: %v", err)
	}
	if info["name"] != "motd" || info["commit"] != "abc123" || info["sdk"] != "settings-sdk-go" {
		t.Errorf("version info = %v", info)
	}
}

func TestConfigGet(t *testing.T) {
	t.Setenv("SETTINGS_EXTENSION_OUTPUT_FORMAT", "yaml")
	r := execute(t, &fakeExtension{}, "", "config", "get", "output.format")
	if r.err != nil {
		t.Fatalf("Execute error: %v", r.err)
	}
	if got := r.stdout.String(); got != "yaml\n" {
		t.Errorf("stdout = %q, want %q", got, "yaml\n")
	}
}

type nopModel struct{}

func (nopModel) Set(_ *struct{}, target struct{}) (struct{}, error) { return target, nil }

func (nopModel) Generate(_ *struct{}, _ model.Value) (model.GenerateResult[struct{}, struct{}], error) {
	return model.Complete[struct{}](&struct{}{}), nil
}

func (nopModel) Validate(struct{}, model.Value) (bool, error) { return true, nil }

func same(v struct{}) (struct{}, error) { return v, nil }
