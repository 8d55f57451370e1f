package vintf

import "k8s.io/apimachinery/pkg/util/sets"

// DefaultInstance is the synthetic instance name under which a passthrough
// HAL is addressed. Passthrough HALs are loaded in-process as shared
// libraries and have no registered instance names of their own.
const DefaultInstance = "default"

// Implementation describes how a manifest HAL is reachable: either as named
// binderized instances or as a passthrough library built for specific CPU
// architectures. The interface is sealed; Binderized and Passthrough are the
// only variants.
type Implementation interface {
	sealedImplementation()
}

// Binderized declares instances reachable by name over the binder transport,
// keyed by interface name.
type Binderized struct {
	// Interfaces maps an interface name to the instance names registered
	// for it.
	Interfaces map[string]sets.Set[string]
}

func (Binderized) sealedImplementation() {}

// InstancesOf returns the instance names declared for iface, or an empty set
// when the interface is not declared.
func (b Binderized) InstancesOf(iface string) sets.Set[string] {
	if instances, ok := b.Interfaces[iface]; ok {
		return instances
	}
	return sets.New[string]()
}

// Passthrough declares an in-process HAL, disambiguated by the CPU
// architecture it was built for rather than by instance name.
type Passthrough struct {
	// Interfaces lists the interface names the library implements.
	Interfaces sets.Set[string]

	// Architectures lists the bitnesses the library is built for.
	Architectures sets.Set[Arch]
}

func (Passthrough) sealedImplementation() {}

// SupportsArch reports whether the library is built for arch. An entry that
// declares no architectures supports nothing; that state is tolerated, not
// rejected.
func (p Passthrough) SupportsArch(arch Arch) bool {
	return p.Architectures.Has(arch)
}

// ManifestHal is a single HAL a hardware manifest provides.
type ManifestHal struct {
	// Name is the HAL package name, e.g. "android.hardware.nfc".
	Name string

	Version Version

	Implementation Implementation
}

// HalManifest declares the HALs a partition (framework side or device side)
// actually provides. Loading and parsing happen upstream; by the time a
// manifest reaches this package it is a plain in-memory document.
type HalManifest struct {
	Hals []ManifestHal
}

// GetHals returns every entry whose package name and version both match
// exactly. A package can legitimately appear more than once, e.g. with a
// binderized and a passthrough implementation side by side.
func (m *HalManifest) GetHals(name string, version Version) []*ManifestHal {
	var matched []*ManifestHal
	for i := range m.Hals {
		hal := &m.Hals[i]
		if hal.Name == name && hal.Version == version {
			matched = append(matched, hal)
		}
	}
	return matched
}
