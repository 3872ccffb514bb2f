package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics - наблюдаемость проверки присутствия
type Metrics struct {
	// Итоги сессий проверки по состоянию и виду ошибки
	VerificationOutcome *prometheus.CounterVec

	// Расстояние от выборки до зала
	DistanceMeters prometheus.Histogram

	// Длительность чекина целиком
	CheckinLatency prometheus.Histogram

	// Итоги привязки постов к чекинам по методу
	LinkOutcome *prometheus.CounterVec
}

// New регистрирует метрики в reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		VerificationOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_presence_verification_outcomes_total",
			Help: "Total verification session outcomes by terminal state and failure kind",
		}, []string{"state", "kind"}),

		DistanceMeters: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gym_presence_distance_meters",
			Help:    "Distance between the reported sample and the gym",
			Buckets: []float64{10, 25, 50, 80, 100, 150, 250, 500, 1000, 5000},
		}),

		CheckinLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gym_presence_checkin_duration_seconds",
			Help:    "Duration of check-in handling including verification and persistence",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 10},
		}),

		LinkOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_presence_post_link_outcomes_total",
			Help: "Post verification outcomes by verification method",
		}, []string{"method"}),
	}
}

// IncrementOutcome записывает итог сессии
func (m *Metrics) IncrementOutcome(state, kind string) {
	if m != nil {
		m.VerificationOutcome.WithLabelValues(state, kind).Inc()
	}
}

func (m *Metrics) ObserveDistance(meters float64) {
	if m != nil {
		m.DistanceMeters.Observe(meters)
	}
}

func (m *Metrics) ObserveCheckinLatency(d time.Duration) {
	if m != nil {
		m.CheckinLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementLink(method string) {
	if m != nil {
		m.LinkOutcome.WithLabelValues(method).Inc()
	}
}
