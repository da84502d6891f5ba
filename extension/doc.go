// Package extension assembles the versions of a setting into a settings
// extension. It holds the immutable registry of models keyed by version,
// routes migrations along the chain of forward and backward links, executes
// them one step at a time, and serves the proto1 command surface (set,
// generate, validate, migrate) used by the settings orchestrator.
package extension
