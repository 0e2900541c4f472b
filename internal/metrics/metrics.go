// Package metrics counts service events with Prometheus. The CLI is short
// lived, so counters are flushed to a node_exporter textfile instead of being
// scraped.
package metrics

import (
	"strconv"

	"gym-app-go/internal/domain/gym"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gym"

var _ gym.Metrics = (*Recorder)(nil)

type Recorder struct {
	registry           *prometheus.Registry
	accountsCreated    *prometheus.CounterVec
	accountsDeleted    *prometheus.CounterVec
	assignmentRejected *prometheus.CounterVec
	logins             *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		accountsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accounts_created_total",
			Help:      "Accounts registered, by kind.",
		}, []string{"kind"}),
		accountsDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accounts_deleted_total",
			Help:      "Accounts deleted, by kind.",
		}, []string{"kind"}),
		assignmentRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignments_rejected_total",
			Help:      "Trainer assignments refused, by reason.",
		}, []string{"reason"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_logins_total",
			Help:      "Admin login attempts, by outcome.",
		}, []string{"success"}),
	}

	r.registry.MustRegister(r.accountsCreated, r.accountsDeleted, r.assignmentRejected, r.logins)
	return r
}

func (r *Recorder) AccountCreated(kind gym.Kind) {
	r.accountsCreated.WithLabelValues(string(kind)).Inc()
}

func (r *Recorder) AccountDeleted(kind gym.Kind) {
	r.accountsDeleted.WithLabelValues(string(kind)).Inc()
}

func (r *Recorder) AssignmentRejected(reason string) {
	r.assignmentRejected.WithLabelValues(reason).Inc()
}

func (r *Recorder) LoginAttempt(success bool) {
	r.logins.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes every counter in the text exposition format. An empty
// path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
