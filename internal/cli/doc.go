// Package cli defines the Cobra command tree served by a settings extension
// binary. The proto1 commands (set, generate, validate, migrate) decode their
// JSON flags, delegate to the extension and print the result; the remaining
// commands describe the extension and its configuration. Command
// implementations only handle flag parsing and output formatting.
package cli
