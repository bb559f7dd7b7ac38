package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the monitor.
type Metrics struct {
	ChecksTotal        *prometheus.CounterVec
	TargetUp           *prometheus.GaugeVec
	NotificationsTotal *prometheus.CounterVec
	CommandsTotal      *prometheus.CounterVec
	KeepAlivesTotal    *prometheus.CounterVec
}

// New registers the metrics on reg. Pass a fresh prometheus.NewRegistry() in
// tests to avoid duplicate registration panics.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ChecksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uptime_checks_total",
			Help: "Completed target checks by classification reason.",
		}, []string{"target", "reason"}),
		TargetUp: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "uptime_target_up",
			Help: "1 if the last check classified the target as UP, 0 otherwise.",
		}, []string{"target"}),
		NotificationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uptime_notifications_total",
			Help: "Notification attempts by kind and outcome.",
		}, []string{"kind", "outcome"}), // outcome: sent, failed
		CommandsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uptime_commands_total",
			Help: "Inbound commands handled, by command.",
		}, []string{"command"}),
		KeepAlivesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uptime_keepalive_pings_total",
			Help: "Keep-alive self pings by outcome.",
		}, []string{"outcome"}),
	}
}

// The helpers below are nil-safe so components can run without metrics.

func (m *Metrics) ObserveCheck(target, reason string, up bool) {
	if m == nil {
		return
	}
	m.ChecksTotal.WithLabelValues(target, reason).Inc()
	v := 0.0
	if up {
		v = 1
	}
	m.TargetUp.WithLabelValues(target).Set(v)
}

func (m *Metrics) ObserveNotification(kind string, err error) {
	if m == nil {
		return
	}
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}
	m.NotificationsTotal.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) IncCommand(command string) {
	if m == nil {
		return
	}
	m.CommandsTotal.WithLabelValues(command).Inc()
}

func (m *Metrics) ObserveKeepAlive(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.KeepAlivesTotal.WithLabelValues(outcome).Inc()
}
