// Package testability decides whether a test should run against a given HAL,
// based on the framework compatibility matrix and the framework and device
// hardware manifests, and collects the instance names to run it against.
package testability

import (
	"errors"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/halcheck-io/halcheck/pkg/log"
	"github.com/halcheck-io/halcheck/pkg/vintf"
)

// Checker answers go/no-go questions for HAL tests. It borrows its three
// documents from the caller and never mutates them; the checker itself holds
// no mutable state, so concurrent checks are safe as long as nobody mutates
// the documents underneath it.
type Checker struct {
	matrix            *vintf.CompatibilityMatrix
	frameworkManifest *vintf.HalManifest
	deviceManifest    *vintf.HalManifest

	log log.Logger
}

// Option customizes a Checker.
type Option func(*Checker)

// WithLogger routes the checker's decision traces to l instead of the global
// logger.
func WithLogger(l log.Logger) Option {
	return func(c *Checker) { c.log = l }
}

// NewChecker builds a Checker over the framework compatibility matrix, the
// framework hardware manifest and the device hardware manifest. All three
// documents are required; missing ones are reported in a single aggregate
// error, since a checker without any of them cannot produce a meaningful
// answer.
func NewChecker(matrix *vintf.CompatibilityMatrix, frameworkManifest, deviceManifest *vintf.HalManifest, opts ...Option) (*Checker, error) {
	var errs []error
	if matrix == nil {
		errs = append(errs, errors.New("framework compatibility matrix is nil"))
	}
	if frameworkManifest == nil {
		errs = append(errs, errors.New("framework hal manifest is nil"))
	}
	if deviceManifest == nil {
		errs = append(errs, errors.New("device hal manifest is nil"))
	}
	if err := utilerrors.NewAggregate(errs); err != nil {
		return nil, err
	}

	c := &Checker{
		matrix:            matrix,
		frameworkManifest: frameworkManifest,
		deviceManifest:    deviceManifest,
		log:               log.Std().WithName("testability"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CheckHalForComplianceTest reports whether a compliance test should run
// against the HAL identified by package name, version and interface name,
// and the instance names to run it against. Compliance tests validate that a
// HAL implements what the framework expects of it, so the decision follows
// the compatibility matrix. arch is consulted only for passthrough HALs.
//
// The instance set is empty whenever the verdict is false; callers must also
// skip the test when the verdict is true but the set is empty.
func (c *Checker) CheckHalForComplianceTest(pkgName string, version vintf.Version, iface string, arch vintf.Arch) (sets.Set[string], bool) {
	instances, ok := c.checkFrameworkCompatibleHal(pkgName, version, iface, arch)
	observeDecision(testKindCompliance, ok)
	return normalize(instances, ok), ok
}

// CheckHalForNonComplianceTest reports whether a non-compliance test should
// run against the given HAL. Non-compliance tests run against anything the
// device exposes, whether or not the framework depends on it, so the only
// input consulted is the device manifest. arch is consulted only for
// passthrough HALs.
func (c *Checker) CheckHalForNonComplianceTest(pkgName string, version vintf.Version, iface string, arch vintf.Arch) (sets.Set[string], bool) {
	instances, ok := c.checkVendorManifestHal(pkgName, version, iface, arch)
	observeDecision(testKindNonCompliance, ok)
	return normalize(instances, ok), ok
}

// checkFrameworkCompatibleHal is the framework-compatibility path shared by
// compliance checks.
//
// A HAL absent from the matrix is not a framework concern. A required HAL
// must also resolve in the framework manifest; the testable instances are
// the reconciliation of what the matrix expects with what the framework
// manifest declares. An optional HAL is testable only if the vendor chose to
// provide it, in which case the device-declared instances are used as-is.
func (c *Checker) checkFrameworkCompatibleHal(pkgName string, version vintf.Version, iface string, arch vintf.Arch) (sets.Set[string], bool) {
	matrixHal := c.matrix.GetHal(pkgName, version)
	if matrixHal == nil {
		c.log.Debug("hal not listed in compatibility matrix",
			"package", pkgName, "version", version)
		return nil, false
	}

	expected, ok := matrixHal.ExpectedInstances(iface)
	if !ok {
		c.log.Debug("interface not covered by compatibility matrix entry",
			"package", pkgName, "version", version, "interface", iface)
		return nil, false
	}

	if matrixHal.Optional {
		return c.checkVendorManifestHal(pkgName, version, iface, arch)
	}

	declared, ok := c.checkFrameworkManifestHal(pkgName, version, iface, arch)
	if !ok {
		// Required by the matrix but unresolvable in the framework manifest.
		// That is a framework packaging defect rather than a vendor decision,
		// so surface it distinctly while preserving the (false, empty)
		// contract.
		frameworkIntegrityGaps.Inc()
		c.log.Warn("required hal unresolvable in framework manifest",
			"package", pkgName, "version", version, "interface", iface, "arch", string(arch))
		return nil, false
	}

	return testInstances(expected, declared), true
}

// checkVendorManifestHal reports whether the device manifest supports the
// given HAL, with the declared instance names.
func (c *Checker) checkVendorManifestHal(pkgName string, version vintf.Version, iface string, arch vintf.Arch) (sets.Set[string], bool) {
	return checkManifestInstances(c.deviceManifest, pkgName, version, iface, arch)
}

// checkFrameworkManifestHal reports whether the framework manifest supports
// the given HAL, with the declared instance names.
func (c *Checker) checkFrameworkManifestHal(pkgName string, version vintf.Version, iface string, arch vintf.Arch) (sets.Set[string], bool) {
	return checkManifestInstances(c.frameworkManifest, pkgName, version, iface, arch)
}

// checkManifestInstances resolves a HAL in one manifest. Candidate entries
// are filtered by exact package+version match, then by interface name, then
// (for passthrough entries only) by architecture. Instances from every
// matching entry are combined, so a package that appears both binderized and
// passthrough contributes both.
func checkManifestInstances(manifest *vintf.HalManifest, pkgName string, version vintf.Version, iface string, arch vintf.Arch) (sets.Set[string], bool) {
	found := false
	instances := sets.New[string]()
	for _, hal := range manifest.GetHals(pkgName, version) {
		declared, ok := checkManifestHal(hal, iface, arch)
		if !ok {
			continue
		}
		found = true
		instances = instances.Union(declared)
	}
	if !found {
		return nil, false
	}
	return instances, true
}

// checkManifestHal reports whether one manifest entry serves the interface,
// with its instance names. Binderized entries are matched purely by instance
// naming and ignore arch; passthrough entries must additionally be built for
// the requested architecture and expose the single synthetic default
// instance.
func checkManifestHal(hal *vintf.ManifestHal, iface string, arch vintf.Arch) (sets.Set[string], bool) {
	switch impl := hal.Implementation.(type) {
	case vintf.Binderized:
		declared := impl.InstancesOf(iface)
		if declared.Len() == 0 {
			return nil, false
		}
		return declared, true
	case vintf.Passthrough:
		if !impl.Interfaces.Has(iface) {
			return nil, false
		}
		if !checkPassthroughManifestHal(impl, arch) {
			return nil, false
		}
		return sets.New(vintf.DefaultInstance), true
	default:
		return nil, false
	}
}

// checkPassthroughManifestHal reports whether a passthrough entry is built
// for the requested architecture.
func checkPassthroughManifestHal(impl vintf.Passthrough, arch vintf.Arch) bool {
	return impl.SupportsArch(arch)
}

// testInstances reconciles the instance names the matrix expects with the
// names a manifest declares. An empty expected set is the matrix wildcard
// and leaves the manifest authoritative. When both sides constrain, only the
// intersection is testable: an instance present on one side only cannot be
// verified and is dropped silently. An empty result means "do not run".
func testInstances(expected, declared sets.Set[string]) sets.Set[string] {
	switch {
	case expected.Len() == 0:
		return declared
	case declared.Len() == 0:
		return expected.Clone()
	default:
		return expected.Intersection(declared)
	}
}

// normalize pins down the output contract: never a nil set, and always an
// empty set when the verdict is false.
func normalize(instances sets.Set[string], ok bool) sets.Set[string] {
	if !ok || instances == nil {
		return sets.New[string]()
	}
	return instances
}
