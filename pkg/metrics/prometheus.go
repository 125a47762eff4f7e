// Package metrics provides Prometheus metrics for the recognition service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the recognition service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Core business metrics
	recognitionsCreated  prometheus.Counter
	recognitionsRejected *prometheus.CounterVec

	// Notification delivery metrics
	notificationsSent     prometheus.Counter
	notificationsFailed   prometheus.Counter
	notificationsQueued   prometheus.Counter
	notificationQueueSize prometheus.Gauge
	notificationFlushes   prometheus.Counter

	// Live subscription metrics
	subscribersActive *prometheus.GaugeVec
	eventsPublished   *prometheus.CounterVec
	eventsDropped     *prometheus.CounterVec

	// Operational health metrics
	feedSize            prometheus.Gauge
	directoryUsers      prometheus.Gauge
	analyticsTeams      prometheus.Gauge
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByComponent   *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "recognition",
		subsystem:        "feed",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recognitionsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recognitions_created_total",
		Help:      "Total number of recognitions accepted by the feed store",
	})

	m.recognitionsRejected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "recognitions_rejected_total",
			Help:      "Total number of rejected creation attempts by reason",
		},
		[]string{"reason"},
	)

	m.notificationsSent = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notifications_sent_total",
		Help:      "Total number of external notifications delivered",
	})

	m.notificationsFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notifications_failed_total",
		Help:      "Total number of external notification delivery failures",
	})

	m.notificationsQueued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notifications_queued_total",
		Help:      "Total number of notifications placed on the batch queue",
	})

	m.notificationQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notification_queue_size",
		Help:      "Current number of notifications awaiting a batch flush",
	})

	m.notificationFlushes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notification_flushes_total",
		Help:      "Total number of batch flush cycles",
	})

	m.subscribersActive = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "subscribers_active",
			Help:      "Current number of live subscribers by channel kind",
		},
		[]string{"channel"},
	)

	m.eventsPublished = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "events_published_total",
			Help:      "Total number of events fanned out to subscribers by channel kind",
		},
		[]string{"channel"},
	)

	m.eventsDropped = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "events_dropped_total",
			Help:      "Total number of events dropped on slow subscribers by channel kind",
		},
		[]string{"channel"},
	)

	m.feedSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_size",
		Help:      "Total number of recognitions held in the feed store",
	})

	m.directoryUsers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "directory_users",
		Help:      "Total number of users in the directory",
	})

	m.analyticsTeams = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analytics_teams_tracked",
		Help:      "Number of teams with recorded analytics activity",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_total",
			Help:      "Total number of errors by component and kind",
		},
		[]string{"component", "kind"},
	)
}

// Package-level helpers operating on the global manager.

// RecordRecognitionCreated increments the accepted creation counter.
func RecordRecognitionCreated() {
	globalManager.recognitionsCreated.Inc()
}

// RecordRecognitionRejected increments the rejected creation counter.
func RecordRecognitionRejected(reason string) {
	globalManager.recognitionsRejected.WithLabelValues(reason).Inc()
}

// RecordNotificationSent increments the delivered notification counter.
func RecordNotificationSent() {
	globalManager.notificationsSent.Inc()
}

// RecordNotificationFailed increments the failed notification counter.
func RecordNotificationFailed() {
	globalManager.notificationsFailed.Inc()
}

// RecordNotificationQueued increments the queued notification counter.
func RecordNotificationQueued() {
	globalManager.notificationsQueued.Inc()
}

// UpdateNotificationQueueSize sets the pending notification gauge.
func UpdateNotificationQueueSize(size int) {
	globalManager.notificationQueueSize.Set(float64(size))
}

// RecordNotificationFlush increments the flush cycle counter.
func RecordNotificationFlush() {
	globalManager.notificationFlushes.Inc()
}

// UpdateSubscribersActive sets the live subscriber gauge for a channel kind.
func UpdateSubscribersActive(channel string, count int) {
	globalManager.subscribersActive.WithLabelValues(channel).Set(float64(count))
}

// RecordEventPublished increments the fan-out counter for a channel kind.
func RecordEventPublished(channel string) {
	globalManager.eventsPublished.WithLabelValues(channel).Inc()
}

// RecordEventDropped increments the dropped-event counter for a channel kind.
func RecordEventDropped(channel string) {
	globalManager.eventsDropped.WithLabelValues(channel).Inc()
}

// UpdateFeedSize sets the feed store size gauge.
func UpdateFeedSize(count int) {
	globalManager.feedSize.Set(float64(count))
}

// UpdateDirectoryUsers sets the directory user gauge.
func UpdateDirectoryUsers(count int) {
	globalManager.directoryUsers.Set(float64(count))
}

// UpdateAnalyticsTeams sets the tracked-teams gauge.
func UpdateAnalyticsTeams(count int) {
	globalManager.analyticsTeams.Set(float64(count))
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent increments the error counter for a component and kind.
func RecordErrorByComponent(component, kind string) {
	globalManager.errorsByComponent.WithLabelValues(component, kind).Inc()
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
