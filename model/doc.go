// Package model defines the contract a versioned settings schema implements and
// the type-erased adapter the extension runtime uses to drive it. Authors
// implement SettingsModel for each version of their setting and register it with
// Define, declaring the neighboring versions it migrates to. The resulting Setting
// exposes the same operations over untyped exchange values (decoded JSON), so a
// registry can hold every version of a setting in one homogeneous collection.
package model
