package extension

import (
	"strings"

	"github.com/bottlerocket-os/settings-sdk-go/model"
)

// Direction is the direction of a single migration step.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "unknown"
	}
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

// Route is the sequence of steps leading from one version to another. Routes
// along a linear chain only ever repeat a single direction.
type Route []Direction

func (r Route) String() string {
	steps := make([]string, len(r))
	for i, d := range r {
		steps[i] = d.String()
	}
	return "[" + strings.Join(steps, ", ") + "]"
}

// FindRoute returns the steps that migrate a value of version start into
// version target. Identical versions yield an empty route. Otherwise the
// forward chain from start is searched before the backward one. The second
// result is false if target is not reachable, including when either version
// is not registered.
func (e *SettingsExtension) FindRoute(start, target string) (Route, bool) {
	if start == target {
		return Route{}, true
	}

	for _, dir := range []Direction{Forward, Backward} {
		for steps, m := range e.walk(start, dir) {
			if m.Version() == target {
				return repeat(dir, steps), true
			}
		}
	}
	return nil, false
}

func repeat(dir Direction, n int) Route {
	route := make(Route, n)
	for i := range route {
		route[i] = dir
	}
	return route
}

// walk returns the models met by following links in one direction from start,
// start included. The walk ends at the first missing link or unregistered
// neighbor and never visits more models than are registered, so a cyclic
// chain cannot loop forever.
func (e *SettingsExtension) walk(start string, dir Direction) []model.Model {
	var chain []model.Model
	m, ok := e.models[start]
	for ok && len(chain) < len(e.models) {
		chain = append(chain, m)
		m, ok = e.neighbor(m, dir)
	}
	return chain
}

// neighbor resolves the registered model m links to in direction dir.
func (e *SettingsExtension) neighbor(m model.Model, dir Direction) (model.Model, bool) {
	version, ok := link(m, dir)
	if !ok {
		return nil, false
	}
	next, ok := e.models[version]
	return next, ok
}

func link(m model.Model, dir Direction) (string, bool) {
	if dir == Forward {
		return m.MigratesForwardTo()
	}
	return m.MigratesBackwardTo()
}
