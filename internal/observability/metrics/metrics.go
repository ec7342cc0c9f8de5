// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ai_speaker_segmentation"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Session metrics
	SessionsTotal   prometheus.Counter
	SessionsActive  prometheus.Gauge
	SessionDuration prometheus.Histogram

	// Stream processing metrics
	EventsTotal      prometheus.Counter
	WordsAccumulated prometheus.Counter
	LabelsMerged     prometheus.Counter
	LabelsRevised    prometheus.Counter

	// Emission metrics
	ResultsEmitted  prometheus.Counter
	SegmentsEmitted prometheus.Counter

	// Error metrics
	StreamErrors *prometheus.CounterVec

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		SessionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Total number of segmentation sessions started",
		}),
		SessionsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of currently active segmentation sessions",
		}),
		SessionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_duration_seconds",
			Help:      "Duration of segmentation sessions in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		}),

		EventsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Total number of recognition events processed",
		}),
		WordsAccumulated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "words_accumulated_total",
			Help:      "Total number of finalized word timestamps accumulated",
		}),
		LabelsMerged: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "labels_merged_total",
			Help:      "Total number of speaker labels merged",
		}),
		LabelsRevised: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "labels_revised_total",
			Help:      "Total number of provisional speaker labels replaced by revisions",
		}),

		ResultsEmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_emitted_total",
			Help:      "Total number of segmented results emitted",
		}),
		SegmentsEmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_emitted_total",
			Help:      "Total number of segments across all emitted results",
		}),

		StreamErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_errors_total",
			Help:      "Total number of stream errors signaled",
		}, []string{"kind"}),

		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),
	}
}

// RecordSessionStart records a new session starting.
func (m *Metrics) RecordSessionStart() {
	m.SessionsTotal.Inc()
	m.SessionsActive.Inc()
}

// RecordSessionEnd records a session ending.
func (m *Metrics) RecordSessionEnd(durationSeconds float64) {
	m.SessionsActive.Dec()
	m.SessionDuration.Observe(durationSeconds)
}

// RecordEvent records one recognition event being processed.
func (m *Metrics) RecordEvent() {
	m.EventsTotal.Inc()
}

// RecordWords records finalized word timestamps being accumulated.
func (m *Metrics) RecordWords(n int) {
	m.WordsAccumulated.Add(float64(n))
}

// RecordLabels records speaker labels merged and how many revisions they caused.
func (m *Metrics) RecordLabels(merged, revised int) {
	m.LabelsMerged.Add(float64(merged))
	m.LabelsRevised.Add(float64(revised))
}

// RecordEmission records one segmented result being emitted.
func (m *Metrics) RecordEmission(segments int) {
	m.ResultsEmitted.Inc()
	m.SegmentsEmitted.Add(float64(segments))
}

// RecordStreamError records a stream error by kind.
func (m *Metrics) RecordStreamError(kind string) {
	m.StreamErrors.WithLabelValues(kind).Inc()
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic).Inc()
	}
}
