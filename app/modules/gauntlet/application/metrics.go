package gauntletservice

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the gauntlet module's Prometheus collectors.
type Metrics struct {
	MatchesProcessed *prometheus.CounterVec
	MatchesFailed    prometheus.Counter
	RankChanges      prometheus.Counter
	ProcessDuration  prometheus.Histogram
}

// NewMetrics builds the collectors and registers them on reg when it is
// non-nil. A nil registry yields unregistered collectors, which keeps
// tests free of duplicate-registration panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		MatchesProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crewbot",
			Subsystem: "gauntlet",
			Name:      "matches_processed_total",
			Help:      "Matches processed, labelled by side A outcome.",
		}, []string{"outcome"}),
		MatchesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crewbot",
			Subsystem: "gauntlet",
			Name:      "matches_failed_total",
			Help:      "Match submissions that rolled back.",
		}),
		RankChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crewbot",
			Subsystem: "gauntlet",
			Name:      "rank_changes_total",
			Help:      "Progression entries written.",
		}),
		ProcessDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crewbot",
			Subsystem: "gauntlet",
			Name:      "process_match_seconds",
			Help:      "Wall time of ProcessMatch including the transaction.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.MatchesProcessed, m.MatchesFailed, m.RankChanges, m.ProcessDuration)
	}
	return m
}
