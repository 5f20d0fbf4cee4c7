package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader holds the ID assigned to each request
const RequestIDHeader = "X-Request-Id"

// ReqLoggerHandler logs every request and tags it with an ID
type ReqLoggerHandler struct {
	BaseHandler

	// Handler to actually handle requests
	Handler http.Handler
}

// ServeHTTP implements http.Handler
func (h ReqLoggerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqID := r.Header.Get(RequestIDHeader)
	if len(reqID) == 0 {
		reqID = uuid.New().String()
	}
	w.Header().Set(RequestIDHeader, reqID)

	h.Logger.Debugf("[%s] %s %s", reqID, r.Method, r.URL.String())

	h.Handler.ServeHTTP(w, r)
}
