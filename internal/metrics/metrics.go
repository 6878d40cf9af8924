package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Booking outcomes.
const (
	OutcomeCreated  = "created"
	OutcomeConflict = "conflict"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics holds the application collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	BookingsTotal        *prometheus.CounterVec
	BookingLatency       prometheus.Histogram
	AvailabilityQueries  *prometheus.CounterVec
	AvailabilityLatency  prometheus.Histogram
	StatusTransitions    *prometheus.CounterVec
	RateLimitRejections  prometheus.Counter
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestsDuration *prometheus.HistogramVec
}

func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		BookingsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Booking attempts by outcome",
		}, []string{"outcome"}),
		BookingLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "booking_duration_seconds",
			Help:      "Time spent in the booking transaction",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		AvailabilityQueries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_queries_total",
			Help:      "Availability queries by resolved schedule source",
		}, []string{"source"}),
		AvailabilityLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "availability_duration_seconds",
			Help:      "Time spent computing availability",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5},
		}),
		StatusTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_status_transitions_total",
			Help:      "Appointment status changes by source and target status",
		}, []string{"source", "status"}),
		RateLimitRejections: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_rejections_total",
			Help:      "Requests rejected by the booking rate limiter",
		}),
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestsDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
		}, []string{"method", "path"}),
	}
}

func (m *Metrics) ObserveBooking(outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(outcome).Inc()
	m.BookingLatency.Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveAvailability(source string, started time.Time) {
	if m == nil {
		return
	}
	m.AvailabilityQueries.WithLabelValues(source).Inc()
	m.AvailabilityLatency.Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveTransition(source, status string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(source, status).Inc()
}

func (m *Metrics) ObserveRateLimited() {
	if m == nil {
		return
	}
	m.RateLimitRejections.Inc()
}

// Middleware records request counts and latency per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestsDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
