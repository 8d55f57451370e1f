package testability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	testKindCompliance    = "compliance"
	testKindNonCompliance = "noncompliance"
)

var (
	// checkDecisions counts testability verdicts by test kind and outcome.
	checkDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "halcheck_decisions_total",
			Help: "Total HAL testability decisions, by test kind (compliance/noncompliance) and verdict (run/skip).",
		},
		[]string{"test", "verdict"},
	)

	// frameworkIntegrityGaps counts HALs the matrix requires that could not
	// be resolved in the framework manifest. A non-zero value points at a
	// misconfigured framework build, not a vendor defect.
	frameworkIntegrityGaps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "halcheck_framework_integrity_gaps_total",
			Help: "Required matrix HALs unresolvable in the framework manifest.",
		},
	)
)

func init() {
	prometheus.MustRegister(checkDecisions, frameworkIntegrityGaps)
}

func observeDecision(kind string, runnable bool) {
	verdict := "skip"
	if runnable {
		verdict = "run"
	}
	checkDecisions.WithLabelValues(kind, verdict).Inc()
}
