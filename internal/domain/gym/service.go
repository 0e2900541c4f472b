package gym

import "time"

type Option func(*options)

type options struct {
	metrics Metrics
	now     func() time.Time
}

func WithMetrics(metrics Metrics) Option {
	return func(o *options) {
		if metrics != nil {
			o.metrics = metrics
		}
	}
}

// WithClock overrides the clock used for default join dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		metrics: noopMetrics{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
