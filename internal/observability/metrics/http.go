package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes HTTP server metrics plus the hybrid QA observations.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	qaRequestsTotal *prometheus.CounterVec
	qaNoAnswerTotal *prometheus.CounterVec
	qaAnswers       *prometheus.HistogramVec
	qaDuration      *prometheus.HistogramVec
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sportspulse",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sportspulse",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "sportspulse",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	qaRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sportspulse",
			Subsystem: "qa",
			Name:      "requests_total",
			Help:      "Total answered questions by winning source.",
		},
		[]string{"service", "source"},
	)
	qaNoAnswerTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sportspulse",
			Subsystem: "qa",
			Name:      "no_answer_total",
			Help:      "Total questions that resolved to the sentinel response.",
		},
		[]string{"service"},
	)
	qaAnswers := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sportspulse",
			Subsystem: "qa",
			Name:      "merged_answers",
			Help:      "Distribution of merged answers per question.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		},
		[]string{"service"},
	)
	qaDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sportspulse",
			Subsystem: "qa",
			Name:      "duration_seconds",
			Help:      "Question answering duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		qaRequestsTotal,
		qaNoAnswerTotal,
		qaAnswers,
		qaDuration,
	)

	return &Metrics{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestInFlight: requestInFlight,
		qaRequestsTotal: qaRequestsTotal,
		qaNoAnswerTotal: qaNoAnswerTotal,
		qaAnswers:       qaAnswers,
		qaDuration:      qaDuration,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// RecordQAObservation tracks one answered question. Source is the winning
// source of the best answer; "none" counts as a sentinel response.
func (m *Metrics) RecordQAObservation(service, source string, answerCount int, duration time.Duration) {
	if source == "" {
		source = "none"
	}
	m.qaRequestsTotal.WithLabelValues(service, source).Inc()
	m.qaAnswers.WithLabelValues(service).Observe(float64(answerCount))
	m.qaDuration.WithLabelValues(service).Observe(duration.Seconds())
	if answerCount == 0 {
		m.qaNoAnswerTotal.WithLabelValues(service).Inc()
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}
