package extension

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/juju/loggo/v2"

	"github.com/bottlerocket-os/settings-sdk-go/model"
)

var logger = loggo.GetLogger("settings.extension")

// SettingsExtension is the registry of every version of one setting. It is
// built once by New and never modified, so it is safe for concurrent use.
type SettingsExtension struct {
	name   string
	models map[string]model.Model
}

// New builds an extension from one model per supported version.
//
// Construction fails if a version is empty or registered twice, if the
// migration links form a cycle, or if two registered versions disagree about
// being neighbors. Links that name unregistered versions are accepted; they
// end the chain in that direction.
func New(name string, models ...model.Model) (*SettingsExtension, error) {
	e := &SettingsExtension{
		name:   name,
		models: make(map[string]model.Model, len(models)),
	}

	for _, m := range models {
		version := m.Version()
		if version == "" {
			return nil, fmt.Errorf("%w: model %T has an empty version", model.InvalidExtension, m)
		}
		if _, exists := e.models[version]; exists {
			return nil, fmt.Errorf("%w: %w %q", model.InvalidExtension, model.DuplicateVersion, version)
		}
		e.models[version] = m
	}

	if err := e.checkChains(); err != nil {
		return nil, fmt.Errorf("%w: %w", model.InvalidExtension, err)
	}
	return e, nil
}

// Name returns the name of the setting the extension serves.
func (e *SettingsExtension) Name() string { return e.name }

// Model returns the model registered for version.
func (e *SettingsExtension) Model(version string) (model.Model, bool) {
	m, ok := e.models[version]
	return m, ok
}

// Versions returns the registered versions. Versions that parse as semantic
// versions ("v1", "1.2.0") come first in semver order; the rest follow
// lexically.
func (e *SettingsExtension) Versions() []string {
	versions := make([]string, 0, len(e.models))
	for v := range e.models {
		versions = append(versions, v)
	}
	slices.SortFunc(versions, compareVersions)
	return versions
}

// Models returns the registered models in Versions order.
func (e *SettingsExtension) Models() []model.Model {
	versions := e.Versions()
	models := make([]model.Model, len(versions))
	for i, v := range versions {
		models[i] = e.models[v]
	}
	return models
}

func compareVersions(a, b string) int {
	av, aErr := semver.NewVersion(a)
	bv, bErr := semver.NewVersion(b)
	switch {
	case aErr == nil && bErr == nil:
		if c := av.Compare(bv); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// lookup resolves a version requested by a caller.
func (e *SettingsExtension) lookup(version string) (model.Model, error) {
	m, ok := e.models[version]
	if !ok {
		return nil, fmt.Errorf("requested model version %q: %w", version, model.UnknownVersion)
	}
	return m, nil
}

// checkChains verifies that the links between registered versions form
// simple linear chains.
func (e *SettingsExtension) checkChains() error {
	for _, version := range e.Versions() {
		m := e.models[version]
		for _, dir := range []Direction{Forward, Backward} {
			neighbor, ok := e.neighbor(m, dir)
			if !ok {
				if target, linked := link(m, dir); linked {
					logger.Warningf("version %q migrates %s to unregistered version %q", version, dir, target)
				}
				continue
			}

			back, ok := link(neighbor, dir.Reverse())
			if ok && back != version {
				if _, registered := e.models[back]; registered {
					return fmt.Errorf("version %q migrates %s to %q, but %q migrates %s to %q",
						version, dir, neighbor.Version(), neighbor.Version(), dir.Reverse(), back)
				}
			}

			chain := e.walk(version, dir)
			if len(chain) == len(e.models) {
				if _, ok := e.neighbor(chain[len(chain)-1], dir); ok {
					return fmt.Errorf("%s migrations starting at %q form a cycle", dir, version)
				}
			}
		}
	}
	return nil
}
