package puzzle

import (
	"github.com/unixpickle/hyperpuzzle/names"
	"golang.org/x/exp/constraints"
)

// assignName names a new element from a name specification, falling back
// to the next unused autoname if the specification is empty, invalid, or
// conflicts with an existing name.
func assignName[I constraints.Integer](
	m *names.BiMap[I],
	id I,
	spec string,
	auto names.Autonames,
	kind ElementKind,
) []Warning {
	var warnings []Warning
	if spec != "" {
		parsed, err := names.ParseSpec(spec)
		if err == nil {
			err = m.Set(id, parsed)
		}
		if err == nil {
			return nil
		}
		warnings = append(warnings, Warning{Kind: kind, Name: spec, Err: err})
	}
	name := names.NextUnused(auto, m.Taken)
	if err := m.SetName(id, name); err != nil {
		// NextUnused only returns free names.
		panic(err)
	}
	return warnings
}

func mustName[I constraints.Integer](m *names.BiMap[I], id I) string {
	name, ok := m.Name(id)
	if !ok {
		panic("element has no name")
	}
	return name
}
