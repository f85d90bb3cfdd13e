package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP metrics. Evaluation metrics are registered by the series package on
// the same default registry.
var (
	inFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "seqcalc_active_requests",
		Help: "Requests currently being served.",
	})
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seqcalc_requests_total",
		Help: "Requests served, by route, method and status code.",
	}, []string{"path", "method", "code"})
	requestSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "seqcalc_request_duration_seconds",
		Help:    "Time spent serving requests, by route and method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "method"})
)

// instrument records in-flight, count and latency metrics for one route.
func instrument(path string, next http.HandlerFunc) http.HandlerFunc {
	route := prometheus.Labels{"path": path}
	h := promhttp.InstrumentHandlerCounter(requestsTotal.MustCurryWith(route), next)
	h = promhttp.InstrumentHandlerDuration(requestSeconds.MustCurryWith(route), h)
	return promhttp.InstrumentHandlerInFlight(inFlight, h).ServeHTTP
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	promhttp.Handler().ServeHTTP(w, r)
}
