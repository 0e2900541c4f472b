package gym

// Metrics receives service-level events. The metrics package backs it with
// Prometheus counters.
type Metrics interface {
	AccountCreated(kind Kind)
	AccountDeleted(kind Kind)
	AssignmentRejected(reason string)
	LoginAttempt(success bool)
}

type noopMetrics struct{}

func (noopMetrics) AccountCreated(Kind) {}

func (noopMetrics) AccountDeleted(Kind) {}

func (noopMetrics) AssignmentRejected(string) {}

func (noopMetrics) LoginAttempt(bool) {}
