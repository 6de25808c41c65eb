package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChecksRun = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fcbot_checks_total",
		Help: "The total number of league checks run, by job class",
	}, []string{"job"})

	ChecksSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fcbot_checks_skipped_total",
		Help: "Checks skipped because a check was already in flight",
	}, []string{"job"})

	CheckErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fcbot_check_errors_total",
		Help: "Checks aborted by an upstream or cache error",
	}, []string{"job"})

	UpdatesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fcbot_updates_generated_total",
		Help: "Notification lines produced by the diff engine",
	})

	UpdatesDeduped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fcbot_updates_deduped_total",
		Help: "Notification lines dropped by the dedup window",
	})

	RunawayTicksSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fcbot_runaway_ticks_suppressed_total",
		Help: "Ticks whose dispatch was suppressed by the runaway guard",
	})

	FantasyCriticRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fantasycritic_request_duration_seconds",
		Help:    "Duration of Fantasy Critic API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "status"})

	FantasyCriticRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fantasycritic_requests_total",
		Help: "Total number of Fantasy Critic API requests",
	}, []string{"endpoint", "status"})

	DiscordMessagesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_messages_sent_total",
		Help: "Total number of Discord messages sent",
	}, []string{"status"})
)
