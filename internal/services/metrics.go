// Prometheus collectors for domain verification and edge reconciliation.
// Best-effort edge calls may fail silently from the tenant's point of view,
// so the failure counter is the hook for out-of-band reconciliation.
package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// verifyAttempts counts verification passes by resulting status.
	verifyAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "domain_verification_attempts_total",
			Help: "Total domain ownership verification attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// edgeFailures counts best-effort edge platform calls that failed and
	// were swallowed (registration on create, removal on delete).
	edgeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edge_domain_sync_failures_total",
			Help: "Best-effort edge platform domain calls that failed.",
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(verifyAttempts, edgeFailures)
}
