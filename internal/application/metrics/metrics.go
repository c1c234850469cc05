package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the application module.
// Tracks intake counts, submission transitions, and notification outcomes.
type Metrics struct {
	ApplicationsCreated   prometheus.Counter
	ApplicationsSubmitted prometheus.Counter
	ValidationFailures    prometheus.Counter
	NotificationFailures  prometheus.Counter
	CreateDuration        prometheus.Histogram
	StatusDuration        prometheus.Histogram
}

// New creates a new Metrics instance with all application module metrics registered.
func New() *Metrics {
	return &Metrics{
		ApplicationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "insureease_applications_created_total",
			Help: "Total number of insurance applications created",
		}),
		ApplicationsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "insureease_applications_submitted_total",
			Help: "Total number of applications that took the submission transition",
		}),
		ValidationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "insureease_validation_failures_total",
			Help: "Total number of application saves rejected by validation",
		}),
		NotificationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "insureease_notification_failures_total",
			Help: "Total number of applicant notification emails that failed to send",
		}),
		CreateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "insureease_create_application_duration_seconds",
			Help:    "Duration of application create operations (intake critical path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		StatusDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "insureease_status_lookup_duration_seconds",
			Help:    "Duration of application status lookups",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementCreated records a successful application creation.
func (m *Metrics) IncrementCreated() {
	m.ApplicationsCreated.Inc()
}

// IncrementSubmitted records a completed submission transition.
func (m *Metrics) IncrementSubmitted() {
	m.ApplicationsSubmitted.Inc()
}

// IncrementValidationFailure records a save rejected by validation.
func (m *Metrics) IncrementValidationFailure() {
	m.ValidationFailures.Inc()
}

// IncrementNotificationFailure records an email that could not be delivered.
func (m *Metrics) IncrementNotificationFailure() {
	m.NotificationFailures.Inc()
}

// ObserveCreate records the duration of a create operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveCreate(start time.Time) {
	m.CreateDuration.Observe(time.Since(start).Seconds())
}

// ObserveStatus records the duration of a status lookup.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveStatus(start time.Time) {
	m.StatusDuration.Observe(time.Since(start).Seconds())
}
