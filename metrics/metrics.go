// Package metrics exposes prometheus collectors for the authoring core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PreviewRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "argus_preview_requests_total",
			Help: "Total number of preview/lookup/profile requests by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	CollaboratorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "argus_collaborator_failures_total",
			Help: "Total number of failed backend collaborator calls",
		},
		[]string{"operation"},
	)

	CatalogRebuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "argus_catalog_rebuild_duration_seconds",
			Help:    "Time taken to rebuild the field catalog",
			Buckets: prometheus.DefBuckets,
		},
	)

	StalePreviewResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "argus_stale_preview_responses_total",
			Help: "Total number of preview responses discarded as superseded",
		},
	)
)
