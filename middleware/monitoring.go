package middleware

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
	storeMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eco_store_mutations_total",
			Help: "Total number of state store mutations",
		},
		[]string{"operation"},
	)
	persistenceFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "eco_persistence_failures_total",
			Help: "Total number of failed slice writes to the kv store",
		},
	)
)

// InitPrometheus registers the metrics. Call this from main.go
func InitPrometheus() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(storeMutationsTotal)
	prometheus.MustRegister(persistenceFailuresTotal)
}

// RecordStoreMutation counts a committed state store mutation.
func RecordStoreMutation(operation string) {
	storeMutationsTotal.WithLabelValues(operation).Inc()
}

// RecordPersistenceFailure counts a swallowed kv write failure.
func RecordPersistenceFailure() {
	persistenceFailuresTotal.Inc()
}

// MonitorMiddleware wraps the router to track all request stats
func MonitorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Initialize with 200 OK in case WriteHeader isn't called explicitly
		ww := &responseWriter{w, http.StatusOK}

		// The wrapper must not hide Flush from streaming handlers, but it
		// must not fake it either: only expose it when the underlying
		// writer really supports it.
		var out http.ResponseWriter = ww
		if _, ok := w.(http.Flusher); ok {
			out = flushingResponseWriter{ww}
		}

		next.ServeHTTP(out, r)

		duration := time.Since(start).Seconds()

		httpRequestsTotal.WithLabelValues(r.URL.Path, r.Method, http.StatusText(ww.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.URL.Path, r.Method).Observe(duration)
	})
}

// BasicAuthMiddleware protects /metrics
func BasicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()

		metricsUser := os.Getenv("METRICS_USER")
		metricsPass := os.Getenv("METRICS_PASS")

		if !ok || user != metricsUser || pass != metricsPass {
			w.Header().Set("WWW-Authenticate", `Basic realm="Metrics"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PprofSecurityMiddleware protects /debug/pprof
func PprofSecurityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Pprof-Secret") != os.Getenv("PPROF_SECRET") {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

type flushingResponseWriter struct {
	*responseWriter
}

func (fw flushingResponseWriter) Flush() {
	fw.ResponseWriter.(http.Flusher).Flush()
}
