package model

import (
	"fmt"

	"github.com/juju/errors"
)

const (
	// UnknownVersion is returned when a referenced setting version is not
	// registered with the extension.
	UnknownVersion = errors.ConstError("unknown setting version")

	// NoMigrationPath is returned when no forward or backward chain of
	// migrations connects two versions.
	NoMigrationPath = errors.ConstError("no migration path")

	// MigrationStepFailure is returned when one migration in a chain fails.
	MigrationStepFailure = errors.ConstError("migration step failed")

	// SerializationMismatch is returned when an exchange value cannot be
	// converted to or from the concrete settings type of a version.
	SerializationMismatch = errors.ConstError("serialization mismatch")

	// InternalConsistencyFault is returned when a migration link names a
	// version the extension cannot resolve. It indicates a misconfigured
	// extension rather than bad input.
	InternalConsistencyFault = errors.ConstError("internal consistency fault")

	// InvalidExtension is returned when a set of models cannot form an
	// extension.
	InvalidExtension = errors.ConstError("invalid settings extension")

	// DuplicateVersion is returned when two models claim the same version.
	DuplicateVersion = errors.ConstError("duplicate setting version")
)

// MigrationError describes the failure of one step of a multi-step migration.
type MigrationError struct {
	// From and To identify the failing step.
	From string
	To   string
	// Start and Target identify the whole migration the step belonged to.
	Start  string
	Target string
	Err    error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("performing sub-migration from %q to %q as part of migration from %q to %q: %v",
		e.From, e.To, e.Start, e.Target, e.Err)
}

// Unwrap exposes both the step failure kind and the underlying cause.
func (e *MigrationError) Unwrap() []error {
	return []error{MigrationStepFailure, e.Err}
}
