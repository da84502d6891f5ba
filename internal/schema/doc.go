// Package schema compiles JSON schemas attached to settings versions and checks
// exchange values against them, reporting failures as path-addressed issues.
package schema
