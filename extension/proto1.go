package extension

import (
	"github.com/bottlerocket-os/settings-sdk-go/model"
)

// Set returns the value to persist when value is proposed for the given
// version of the setting. current is the value already stored, or nil.
func (e *SettingsExtension) Set(version string, value, current model.Value) (model.Value, error) {
	m, err := e.lookup(version)
	if err != nil {
		return nil, err
	}
	return m.Set(current, value)
}

// Generate produces a value for the given version. existingPartial holds the
// result of an earlier generation that needed more data and requiredSettings
// the values of the settings it depends on; either may be nil.
func (e *SettingsExtension) Generate(version string, existingPartial, requiredSettings model.Value) (model.GenerateResult[model.Value, model.Value], error) {
	m, err := e.lookup(version)
	if err != nil {
		return model.GenerateResult[model.Value, model.Value]{}, err
	}
	return m.Generate(existingPartial, requiredSettings)
}

// Validate checks value against the given version, optionally in the context
// of the settings in requiredSettings.
func (e *SettingsExtension) Validate(version string, value, requiredSettings model.Value) (bool, error) {
	m, err := e.lookup(version)
	if err != nil {
		return false, err
	}
	return m.Validate(value, requiredSettings)
}
