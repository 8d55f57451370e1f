package vintf

import "k8s.io/apimachinery/pkg/util/sets"

// MatrixHal is a single HAL dependency declared by the framework
// compatibility matrix.
type MatrixHal struct {
	// Name is the HAL package name.
	Name string

	Version Version

	// Optional marks a HAL the framework can live without. A vendor that
	// chooses not to provide it has no test obligation for it.
	Optional bool

	// Interfaces maps an interface name to the instance names the framework
	// expects for it. An empty set is the wildcard: any instance the
	// manifest declares satisfies the dependency.
	Interfaces map[string]sets.Set[string]
}

// ExpectedInstances returns the instance names the matrix expects for iface
// and whether the interface is covered by this entry at all. An empty set
// with ok=true is the wildcard case.
func (h *MatrixHal) ExpectedInstances(iface string) (sets.Set[string], bool) {
	instances, ok := h.Interfaces[iface]
	if !ok {
		return nil, false
	}
	if instances == nil {
		instances = sets.New[string]()
	}
	return instances, true
}

// CompatibilityMatrix is the framework's declaration of the HALs it depends
// on and at which requirement level.
type CompatibilityMatrix struct {
	Hals []MatrixHal
}

// GetHal returns the entry whose package name and version both match
// exactly, or nil. Package+version never partially matches.
func (m *CompatibilityMatrix) GetHal(name string, version Version) *MatrixHal {
	for i := range m.Hals {
		hal := &m.Hals[i]
		if hal.Name == name && hal.Version == version {
			return hal
		}
	}
	return nil
}
