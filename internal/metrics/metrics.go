package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// DocumentUpdates counts guarded read-modify-write cycles by outcome
	// ("saved", "unchanged", "rejected", "failed").
	DocumentUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sitecms", Name: "document_updates_total", Help: "Guarded document update cycles by outcome."},
		[]string{"outcome"},
	)

	// GuardWait observes how long callers queue for the document lock.
	GuardWait = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: "sitecms", Name: "guard_wait_seconds", Help: "Time spent waiting to acquire the document guard.", Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8)},
	)

	// GuardHold observes the load-mutate-save span under the lock.
	GuardHold = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: "sitecms", Name: "guard_hold_seconds", Help: "Time the document guard is held per update.", Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8)},
	)

	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sitecms", Name: "rate_limit_allowed_total", Help: "Requests allowed by the rate limiter, by route group."},
		[]string{"group"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sitecms", Name: "rate_limit_rejected_total", Help: "Requests rejected by the rate limiter, by route group."},
		[]string{"group"},
	)

	MailSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sitecms", Name: "mail_sent_total", Help: "Compose requests by delivery result."},
		[]string{"result"},
	)
)

// RegisterCollectors registers every collector of this package on reg.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(DocumentUpdates)
	reg.MustRegister(GuardWait)
	reg.MustRegister(GuardHold)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(MailSent)
}
