package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all the available internal metrics
type Metrics struct {
	// APIResponseDurationsMilliseconds is the number of milliseconds it takes to
	// complete API responses.
	//
	// Labels: path (request path), method (request HTTP method),
	// status_code (response HTTP status code)
	APIResponseDurationsMilliseconds *prometheus.HistogramVec

	// APIHandlerPanicsTotal is the number of times HTTP request handlers have paniced.
	//
	// Labels: path (request path), method (request HTTP method)
	APIHandlerPanicsTotal *prometheus.CounterVec

	// SubmissionsTotal is the number of pull request submissions which reached the
	// orchestrator.
	//
	// Labels: outcome (created, duplicate, files_exist, failed)
	SubmissionsTotal *prometheus.CounterVec

	// GitHubRequestDurationsMilliseconds is the number of milliseconds GitHub API
	// calls take.
	//
	// Labels: operation (ex., create-ref), successful (true, false)
	GitHubRequestDurationsMilliseconds *prometheus.HistogramVec
}

// NewMetrics creates a Metrics struct with all the Prometheus metrics recorders initialized
// and registered with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		APIResponseDurationsMilliseconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hyperlane_deploy_api",
			Subsystem: "api",
			Name:      "response_durations_milliseconds",
			Help:      "Time, in milliseconds, it took to respond to API requests",
		}, []string{"path", "method", "status_code"}),
		APIHandlerPanicsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hyperlane_deploy_api",
			Subsystem: "api",
			Name:      "handler_panics_total",
			Help:      "Total number of HTTP handlers which have panicked while processing a request",
		}, []string{"path", "method"}),
		SubmissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hyperlane_deploy_api",
			Subsystem: "submissions",
			Name:      "total",
			Help:      "Total number of pull request submissions by outcome",
		}, []string{"outcome"}),
		GitHubRequestDurationsMilliseconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hyperlane_deploy_api",
			Subsystem: "github",
			Name:      "request_durations_milliseconds",
			Help:      "Time, in milliseconds, GitHub API calls took",
		}, []string{"operation", "successful"}),
	}

	reg.MustRegister(metrics.APIResponseDurationsMilliseconds)
	reg.MustRegister(metrics.APIHandlerPanicsTotal)
	reg.MustRegister(metrics.SubmissionsTotal)
	reg.MustRegister(metrics.GitHubRequestDurationsMilliseconds)

	return metrics
}
