// Package metrics exposes the Prometheus instruments for the notice
// board API. Counters are registered once via promauto; the /metrics
// endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	noticesPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "noticeboard_notices_published_total",
		Help: "Notices created through the admin API, by urgency.",
	}, []string{"urgency"})

	authFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "noticeboard_auth_failures_total",
		Help: "Requests rejected by the access control gate, by reason.",
	}, []string{"reason"})
)

// NoticePublished records a successfully created notice.
func NoticePublished(urgent bool) {
	urgency := "normal"
	if urgent {
		urgency = "urgent"
	}
	noticesPublished.WithLabelValues(urgency).Inc()
}

// AuthFailure records a request stopped by the gate. Reason is one of
// "unauthenticated", "invalid_token", "forbidden".
func AuthFailure(reason string) {
	authFailures.WithLabelValues(reason).Inc()
}
