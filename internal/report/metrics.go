package report

import "github.com/prometheus/client_golang/prometheus"

// Metrics instruments the report service.
type Metrics struct {
	submissions *prometheus.CounterVec
	broadcasts  prometheus.Counter
	coalesced   prometheus.Counter
	clears      prometheus.Counter
	subscribers prometheus.Gauge
}

// NewMetrics creates the report metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "archmap",
			Subsystem: "report",
			Name:      "submissions_total",
			Help:      "Report submissions by result (accepted, rejected).",
		}, []string{"result"}),
		broadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "archmap",
			Subsystem: "report",
			Name:      "broadcasts_total",
			Help:      "Update notifications queued to subscribers.",
		}),
		coalesced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "archmap",
			Subsystem: "report",
			Name:      "notifications_coalesced_total",
			Help:      "Update notifications dropped because one was already pending.",
		}),
		clears: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "archmap",
			Subsystem: "report",
			Name:      "clears_total",
			Help:      "Explicit report clears.",
		}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "archmap",
			Subsystem: "report",
			Name:      "subscribers",
			Help:      "Currently connected notification subscribers.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.submissions, m.broadcasts, m.coalesced, m.clears, m.subscribers)
	}
	return m
}
