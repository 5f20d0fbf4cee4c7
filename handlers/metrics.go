package handlers

import (
	"fmt"
	"net/http"

	"github.com/hyperlane-deploy/deploy-api/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsHandler records how long responses take.
//
// The PanicHandler is the only other middleware handler that exports metrics.
type MetricsHandler struct {
	BaseHandler

	// Handler will actually handle requests
	Handler http.Handler
}

// ServeHTTP will observe custom metrics and let the .Handler handle the request
func (h MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respCode := http.StatusOK

	// metricsW will be used as a ResponseWriter by all child handlers. We will
	// capture response HTTP codes using OnWriteHeader.
	metricsW := metrics.MetricsResponseWriter{
		ResponseWriter: w,
		OnWriteHeader: func(code int) {
			respCode = code
		},
	}

	durationTimer := metrics.StartTimer()

	h.Handler.ServeHTTP(metricsW, r)

	durationTimer.Finish(h.Metrics.APIResponseDurationsMilliseconds.With(prometheus.Labels{
		"path":        r.URL.Path,
		"method":      r.Method,
		"status_code": fmt.Sprintf("%d", respCode),
	}))
}
