package model

import (
	"fmt"
	"sync"

	"github.com/bottlerocket-os/settings-sdk-go/internal/schema"
)

// SettingsModel is implemented by the author of one version of a setting.
// T is the complete settings value for the version and P its partially
// generated form. Implementations are usually empty structs; all state travels
// in the arguments.
type SettingsModel[T, P any] interface {
	// Set validates or normalizes a proposed value given the current one, if
	// any, and returns the value to persist.
	Set(current *T, target T) (T, error)

	// Generate produces a default or derived value. existing holds what was
	// generated by an earlier call and dependent holds the values of other
	// settings this one was generated against.
	Generate(existing *P, dependent Value) (GenerateResult[P, T], error)

	// Validate checks a value, optionally against other settings.
	Validate(value T, dependent Value) (bool, error)
}

// Model is the type-erased form of a registered settings version. Every
// argument and result is an exchange value.
type Model interface {
	Version() string

	// MigratesForwardTo returns the version this one migrates forward to, or
	// false if it is the last version of its chain.
	MigratesForwardTo() (string, bool)

	// MigratesBackwardTo returns the version this one migrates backward to,
	// or false if it is the first version of its chain.
	MigratesBackwardTo() (string, bool)

	Set(current, target Value) (Value, error)
	Generate(existingPartial, dependentSettings Value) (GenerateResult[Value, Value], error)
	Validate(value, dependentSettings Value) (bool, error)

	// MigrateForward converts a value of this version into its forward
	// neighbor. It panics if MigratesForwardTo reports no neighbor.
	MigrateForward(current Value) (Value, error)

	// MigrateBackward converts a value of this version into its backward
	// neighbor. It panics if MigratesBackwardTo reports no neighbor.
	MigrateBackward(current Value) (Value, error)
}

// Option configures a Setting as it is defined.
type Option[T any] func(*definition[T])

type definition[T any] struct {
	forward    *link[T]
	backward   *link[T]
	schemaJSON []byte
}

type link[T any] struct {
	version string
	migrate func(T) (any, error)
}

// MigratesForwardTo declares the next version of the setting and the function
// converting a value of this version into it.
func MigratesForwardTo[T, N any](version string, migrate func(T) (N, error)) Option[T] {
	return func(d *definition[T]) {
		d.forward = newLink(version, migrate)
	}
}

// MigratesBackwardTo declares the previous version of the setting and the
// function converting a value of this version into it.
func MigratesBackwardTo[T, N any](version string, migrate func(T) (N, error)) Option[T] {
	return func(d *definition[T]) {
		d.backward = newLink(version, migrate)
	}
}

// WithSchema attaches a JSON schema that incoming complete values must satisfy
// before they are decoded.
func WithSchema[T any](schemaJSON []byte) Option[T] {
	return func(d *definition[T]) {
		d.schemaJSON = schemaJSON
	}
}

func newLink[T, N any](version string, migrate func(T) (N, error)) *link[T] {
	return &link[T]{
		version: version,
		migrate: func(v T) (any, error) {
			out, err := migrate(v)
			if err != nil {
				return nil, err
			}
			return out, nil
		},
	}
}

// Setting adapts a SettingsModel to the Model interface by decoding exchange
// values into T and P on the way in and encoding results on the way out.
type Setting[T, P any] struct {
	version string
	impl    SettingsModel[T, P]
	def     definition[T]

	schemaOnce sync.Once
	schema     *schema.Schema
	schemaErr  error
}

// Define registers impl as the given version of a setting.
func Define[T, P any](version string, impl SettingsModel[T, P], opts ...Option[T]) *Setting[T, P] {
	s := &Setting[T, P]{version: version, impl: impl}
	for _, opt := range opts {
		opt(&s.def)
	}
	return s
}

// Version returns the version identifier of the setting.
func (s *Setting[T, P]) Version() string { return s.version }

// MigratesForwardTo returns the version declared with the MigratesForwardTo option.
func (s *Setting[T, P]) MigratesForwardTo() (string, bool) {
	if s.def.forward == nil {
		return "", false
	}
	return s.def.forward.version, true
}

// MigratesBackwardTo returns the version declared with the MigratesBackwardTo option.
func (s *Setting[T, P]) MigratesBackwardTo() (string, bool) {
	if s.def.backward == nil {
		return "", false
	}
	return s.def.backward.version, true
}

// Set decodes both values and passes them to the author's Set.
func (s *Setting[T, P]) Set(current, target Value) (Value, error) {
	var cur *T
	if current != nil {
		v, err := s.decode(current)
		if err != nil {
			return nil, fmt.Errorf("decoding current value: %w", err)
		}
		cur = &v
	}

	tgt, err := s.decode(target)
	if err != nil {
		return nil, fmt.Errorf("decoding target value: %w", err)
	}

	out, err := s.impl.Set(cur, tgt)
	if err != nil {
		return nil, err
	}
	return ToValue(out)
}

// Generate decodes the partial, if any, and erases the result of the author's Generate.
func (s *Setting[T, P]) Generate(existingPartial, dependentSettings Value) (GenerateResult[Value, Value], error) {
	partial, err := optionalFromValue[P](existingPartial)
	if err != nil {
		return GenerateResult[Value, Value]{}, fmt.Errorf("decoding existing partial: %w", err)
	}

	result, err := s.impl.Generate(partial, dependentSettings)
	if err != nil {
		return GenerateResult[Value, Value]{}, err
	}
	return eraseGenerateResult(result)
}

// Validate decodes value and passes it to the author's Validate.
func (s *Setting[T, P]) Validate(value, dependentSettings Value) (bool, error) {
	v, err := s.decode(value)
	if err != nil {
		return false, fmt.Errorf("decoding value: %w", err)
	}
	return s.impl.Validate(v, dependentSettings)
}

// MigrateForward converts current into the forward neighbor version.
func (s *Setting[T, P]) MigrateForward(current Value) (Value, error) {
	if s.def.forward == nil {
		panic(fmt.Sprintf("model: setting version %q defines no forward migration", s.version))
	}
	return s.migrate(s.def.forward, current)
}

// MigrateBackward converts current into the backward neighbor version.
func (s *Setting[T, P]) MigrateBackward(current Value) (Value, error) {
	if s.def.backward == nil {
		panic(fmt.Sprintf("model: setting version %q defines no backward migration", s.version))
	}
	return s.migrate(s.def.backward, current)
}

func (s *Setting[T, P]) migrate(l *link[T], current Value) (Value, error) {
	v, err := s.decode(current)
	if err != nil {
		return nil, fmt.Errorf("decoding %s value: %w", s.version, err)
	}

	out, err := l.migrate(v)
	if err != nil {
		return nil, err
	}
	return ToValue(out)
}

// decode checks v against the attached schema, if any, and decodes it into T.
func (s *Setting[T, P]) decode(v Value) (T, error) {
	if len(s.def.schemaJSON) > 0 {
		if err := s.checkSchema(v); err != nil {
			var zero T
			return zero, err
		}
	}
	return FromValue[T](v)
}

func (s *Setting[T, P]) checkSchema(v Value) error {
	s.schemaOnce.Do(func() {
		s.schema, s.schemaErr = schema.Compile(s.version+".schema.json", s.def.schemaJSON)
	})
	if s.schemaErr != nil {
		return fmt.Errorf("loading schema for %s: %w", s.version, s.schemaErr)
	}

	result, err := s.schema.Validate(v)
	if err != nil {
		return fmt.Errorf("validating against %s: %w: %w", s.schema.Name(), SerializationMismatch, err)
	}
	if !result.Valid {
		return fmt.Errorf("validating against %s: %w: %s", s.schema.Name(), SerializationMismatch, result.Summary())
	}
	return nil
}
