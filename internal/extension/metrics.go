package extension

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Исходы одного пробуждения (label outcome).
const (
	OutcomeContent   = "content"
	OutcomeEmpty     = "empty"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
)

// Metrics — счётчики Job; регистрируются в переданном Registerer.
type Metrics struct {
	jobs     *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics регистрирует метрики; nil reg — prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notification_extension",
			Name:      "jobs_total",
			Help:      "Processed wake-ups by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "notification_extension",
			Name:      "job_duration_seconds",
			Help:      "Wall-clock time of one job.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 25},
		}),
	}
	reg.MustRegister(m.jobs, m.duration)

	return m
}

func (m *Metrics) observe(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.jobs.WithLabelValues(outcome).Inc()
	m.duration.Observe(d.Seconds())
}

// RegisterInFlight публикует число исполняемых сейчас Job как gauge jobs_in_flight.
func RegisterInFlight(reg prometheus.Registerer, svc *Service) prometheus.GaugeFunc {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "notification_extension",
		Name:      "jobs_in_flight",
		Help:      "Jobs currently executing.",
	}, func() float64 { return float64(svc.InFlight()) })
	reg.MustRegister(g)

	return g
}
