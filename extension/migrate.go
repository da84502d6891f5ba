package extension

import (
	"fmt"

	"github.com/bottlerocket-os/settings-sdk-go/model"
)

// Migrate converts value from version from into version to by applying each
// migration on the route between them in turn.
func (e *SettingsExtension) Migrate(value model.Value, from, to string) (model.Value, error) {
	start, ok := e.models[from]
	if !ok {
		return nil, fmt.Errorf("finding model for starting version %q: %w", from, model.UnknownVersion)
	}

	route, ok := e.FindRoute(from, to)
	if !ok {
		return nil, fmt.Errorf("finding a migration from %q to %q: %w", from, to, model.NoMigrationPath)
	}

	logger.Debugf("migrating %s from %q to %q via %v", e.name, from, to, route)
	return e.migrateAlong(value, start, to, route)
}

// migrateAlong folds value through route starting at model start.
func (e *SettingsExtension) migrateAlong(value model.Value, start model.Model, target string, route Route) (model.Value, error) {
	current := start
	for _, dir := range route {
		next, ok := e.neighbor(current, dir)
		if !ok {
			return nil, fmt.Errorf("resolving %s migration of %q: %w", dir, current.Version(), model.InternalConsistencyFault)
		}

		var err error
		if dir == Forward {
			value, err = current.MigrateForward(value)
		} else {
			value, err = current.MigrateBackward(value)
		}
		if err != nil {
			return nil, &model.MigrationError{
				From:   current.Version(),
				To:     next.Version(),
				Start:  start.Version(),
				Target: target,
				Err:    err,
			}
		}

		logger.Tracef("migrated %q %s to %q", current.Version(), dir, next.Version())
		current = next
	}
	return value, nil
}
