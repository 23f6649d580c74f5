// Package telemetry exposes prometheus instrumentation for specification
// loading, resolution, and measurement checks. Collectors live on a
// package-private registry so importing this package never collides with a
// host application's default registry.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var (
	// DocumentsIngested counts YAML sub-documents accepted by a
	// specification set, labelled by kind (specification or partial).
	DocumentsIngested = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "verify",
		Subsystem: "specs",
		Name:      "documents_ingested_total",
		Help:      "YAML documents ingested into specification sets.",
	}, []string{"kind"})

	// ResolutionPasses counts fix-point resolution passes.
	ResolutionPasses = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "verify",
		Subsystem: "specs",
		Name:      "resolution_passes_total",
		Help:      "Passes of the base-inheritance resolution loop.",
	})

	// ResolutionFailures counts documents that could not be resolved.
	ResolutionFailures = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "verify",
		Subsystem: "specs",
		Name:      "resolution_failures_total",
		Help:      "Documents left unresolved after the fix-point loop.",
	})

	// ChecksTotal counts specification checks by outcome (pass, fail,
	// error).
	ChecksTotal = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "verify",
		Subsystem: "specs",
		Name:      "checks_total",
		Help:      "Measurement checks against specifications by outcome.",
	}, []string{"result"})
)

// Handler serves the package registry in the prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
