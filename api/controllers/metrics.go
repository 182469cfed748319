package controllers

import "github.com/prometheus/client_golang/prometheus"

// engineCounters tracks bracket activity.
type engineCounters struct {
	selections  *prometheus.CounterVec
	cleared     prometheus.Counter
	submissions *prometheus.CounterVec
	sessions    prometheus.GaugeFunc
}

func newEngineCounters(reg prometheus.Registerer, sessions *sessionStore) *engineCounters {
	c := &engineCounters{
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pickem",
			Name:      "bracket_selections_total",
			Help:      "Bracket selections by stage of the selected game.",
		}, []string{"stage"}),
		cleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pickem",
			Name:      "bracket_cleared_slots_total",
			Help:      "Downstream slots cleared by changed selections.",
		}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pickem",
			Name:      "pick_submissions_total",
			Help:      "Pick submissions by outcome.",
		}, []string{"outcome"}),
		sessions: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "pickem",
			Name:      "picking_sessions",
			Help:      "Picking sessions held in memory.",
		}, func() float64 { return float64(sessions.count()) }),
	}
	reg.MustRegister(c.selections, c.cleared, c.submissions, c.sessions)
	return c
}

func (c *engineCounters) submitted(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	c.submissions.WithLabelValues(outcome).Inc()
}
