// Package observability holds the application's Prometheus metric registry
// and OpenTelemetry tracing setup.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bunchly_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ProfileResolutions counts public profile resolutions by outcome
	// (found, not_found, suspended).
	ProfileResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bunchly_profile_resolutions_total",
		Help: "Total public profile resolutions by outcome",
	}, []string{"outcome"})

	// TrackedEvents counts ingested page view events.
	TrackedEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bunchly_tracked_events_total",
		Help: "Total number of ingested page view events",
	})

	// BroadcastRecipients counts recipients targeted by broadcast dispatches, by mode.
	BroadcastRecipients = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bunchly_broadcast_recipients_total",
		Help: "Total number of recipients targeted by broadcast dispatches",
	}, []string{"mode"})

	// BroadcastFailures counts individual send failures during a dispatch.
	BroadcastFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bunchly_broadcast_failures_total",
		Help: "Total number of failed broadcast sends",
	})

	// GeoLookupFailures counts GeoIP lookups that degraded to Unknown.
	GeoLookupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bunchly_geo_lookup_failures_total",
		Help: "Total number of GeoIP lookups that degraded to Unknown",
	})
)
