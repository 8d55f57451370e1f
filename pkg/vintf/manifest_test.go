package vintf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/util/sets"
)

func TestHalManifestGetHals(t *testing.T) {
	manifest := &HalManifest{Hals: []ManifestHal{
		{
			Name:    "android.hardware.nfc",
			Version: Version{Major: 1, Minor: 0},
			Implementation: Binderized{Interfaces: map[string]sets.Set[string]{
				"INfc": sets.New("default"),
			}},
		},
		{
			// Same package and version, provided passthrough as well.
			Name:    "android.hardware.nfc",
			Version: Version{Major: 1, Minor: 0},
			Implementation: Passthrough{
				Interfaces:    sets.New("INfc"),
				Architectures: sets.New(Arch32),
			},
		},
		{
			Name:    "android.hardware.nfc",
			Version: Version{Major: 1, Minor: 1},
			Implementation: Binderized{Interfaces: map[string]sets.Set[string]{
				"INfc": sets.New("default"),
			}},
		},
	}}

	tests := []struct {
		name    string
		pkg     string
		version Version
		want    int
	}{
		{"both variants match", "android.hardware.nfc", Version{Major: 1, Minor: 0}, 2},
		{"distinct minor version", "android.hardware.nfc", Version{Major: 1, Minor: 1}, 1},
		{"minor version never partially matches", "android.hardware.nfc", Version{Major: 1, Minor: 2}, 0},
		{"major version never partially matches", "android.hardware.nfc", Version{Major: 2, Minor: 0}, 0},
		{"unknown package", "android.hardware.radio", Version{Major: 1, Minor: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, manifest.GetHals(tt.pkg, tt.version), tt.want)
		})
	}
}

func TestBinderizedInstancesOf(t *testing.T) {
	impl := Binderized{Interfaces: map[string]sets.Set[string]{
		"INfc": sets.New("default", "nfc2"),
	}}

	assert.Equal(t, sets.New("default", "nfc2"), impl.InstancesOf("INfc"))
	assert.Empty(t, impl.InstancesOf("INfcClientCallback"))
}

func TestPassthroughSupportsArch(t *testing.T) {
	impl := Passthrough{
		Interfaces:    sets.New("IDevice"),
		Architectures: sets.New(Arch32),
	}

	assert.True(t, impl.SupportsArch(Arch32))
	assert.False(t, impl.SupportsArch(Arch64))

	// An entry declaring no architectures is tolerated and matches nothing.
	empty := Passthrough{Interfaces: sets.New("IDevice")}
	assert.False(t, empty.SupportsArch(Arch32))
	assert.False(t, empty.SupportsArch(Arch64))
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "3.4", Version{Major: 3, Minor: 4}.String())
	assert.Equal(t, "0.0", Version{}.String())
}
