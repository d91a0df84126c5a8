package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the toilet submission and read paths.
type Metrics struct {
	ToiletsSubmitted   prometheus.Counter
	SubmissionsRefused *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	SubmitDuration     prometheus.Histogram
	ListDuration       prometheus.Histogram
	PreviewsLive       prometheus.Gauge
}

// New registers the toilet metrics with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the toilet metrics with reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ToiletsSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "looview_toilets_submitted_total",
			Help: "Total number of toilets accepted into the store",
		}),
		SubmissionsRefused: f.NewCounterVec(prometheus.CounterOpts{
			Name: "looview_submissions_refused_total",
			Help: "Submissions refused before reaching the store, by reason",
		}, []string{"reason"}),
		ValidationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "looview_submission_validation_failures_total",
			Help: "Field-level validation failures, by field",
		}, []string{"field"}),
		SubmitDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "looview_submit_duration_seconds",
			Help:    "Duration of accepted submissions (validate, build, persist)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ListDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "looview_list_duration_seconds",
			Help:    "Duration of reading and normalizing the toilet list",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		PreviewsLive: f.NewGauge(prometheus.GaugeOpts{
			Name: "looview_photo_previews_live",
			Help: "Photo preview references created and not yet revoked",
		}),
	}
}

// IncrementSubmitted records an accepted submission.
func (m *Metrics) IncrementSubmitted() {
	m.ToiletsSubmitted.Inc()
}

// IncrementRefused records a submission refused for reason
// (auth_pending, auth_required, validation, conflict).
func (m *Metrics) IncrementRefused(reason string) {
	m.SubmissionsRefused.WithLabelValues(reason).Inc()
}

// IncrementValidationFailure records one failing field.
func (m *Metrics) IncrementValidationFailure(field string) {
	m.ValidationFailures.WithLabelValues(field).Inc()
}

// ObserveSubmit records the duration of an accepted submission.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveSubmit(start time.Time) {
	m.SubmitDuration.Observe(time.Since(start).Seconds())
}

// ObserveList records the duration of a list read.
func (m *Metrics) ObserveList(start time.Time) {
	m.ListDuration.Observe(time.Since(start).Seconds())
}

// SetPreviewsLive reports the current number of live preview references.
func (m *Metrics) SetPreviewsLive(n int) {
	m.PreviewsLive.Set(float64(n))
}
