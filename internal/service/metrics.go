package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// transitionsTotal counts orchestrator calls by operation and outcome.
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devlink_follow_transitions_total",
		Help: "Follow state machine operations by operation and result",
	}, []string{"operation", "result"})

	transitionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devlink_follow_transition_duration_seconds",
		Help:    "Follow state machine operation latency including retries",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"operation"})

	conflictRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devlink_follow_conflict_retries_total",
		Help: "Transactions retried after lock contention or serialization failure",
	}, []string{"operation"})

	notificationsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devlink_notifications_created_total",
		Help: "Notifications appended to the ledger by the follow state machine",
	}, []string{"type"})
)
