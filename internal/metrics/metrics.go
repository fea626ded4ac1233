package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exposes Prometheus metrics for inbound HTTP requests and the
// advisory pipeline.
type Collector struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	recommendations *prometheus.CounterVec
	feedback        *prometheus.CounterVec
	malformed       prometheus.Counter
}

// NewCollector constructs a collector with default histograms/counters.
func NewCollector() (*Collector, error) {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "advisor",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution for inbound HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "advisor",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of inbound HTTP requests.",
	}, []string{"method", "path", "status"})

	recommendations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "advisor",
		Subsystem: "engine",
		Name:      "recommendations_total",
		Help:      "Total number of generated strategy recommendations.",
	}, []string{"risk_tolerance"})

	feedback := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "advisor",
		Subsystem: "engine",
		Name:      "feedback_total",
		Help:      "Total number of processed feedback submissions.",
	}, []string{"risk_adjustment"})

	malformed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "advisor",
		Subsystem: "engine",
		Name:      "malformed_responses_total",
		Help:      "Total number of unparseable model responses.",
	})

	for _, c := range []prometheus.Collector{requestDuration, requestTotal, recommendations, feedback, malformed} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	collector := &Collector{
		registry:        registry,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		recommendations: recommendations,
		feedback:        feedback,
		malformed:       malformed,
	}

	return collector, nil
}

// Handler returns an HTTP handler for exposing Prometheus metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler to record HTTP metrics.
func (c *Collector) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.status)
		path := r.URL.Path

		c.requestTotal.WithLabelValues(r.Method, path, status).Inc()
		c.requestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

// RecordRecommendation counts a generated recommendation by risk tolerance.
func (c *Collector) RecordRecommendation(riskTolerance string) {
	if c == nil {
		return
	}
	c.recommendations.WithLabelValues(riskTolerance).Inc()
}

// RecordFeedback counts processed feedback by risk adjustment direction.
func (c *Collector) RecordFeedback(riskAdjustment string) {
	if c == nil {
		return
	}
	c.feedback.WithLabelValues(riskAdjustment).Inc()
}

// RecordMalformedResponse counts a model response that failed to parse.
func (c *Collector) RecordMalformedResponse() {
	if c == nil {
		return
	}
	c.malformed.Inc()
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
