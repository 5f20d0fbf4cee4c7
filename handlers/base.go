package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hyperlane-deploy/deploy-api/config"
	"github.com/hyperlane-deploy/deploy-api/metrics"

	"github.com/Noah-Huppert/golog"
)

// BaseHandler provides helper methods and commonly used variables for API endpoints to base
// their http.Handlers off
type BaseHandler struct {
	// Ctx is the application context
	Ctx context.Context

	// Logger logs information
	Logger golog.Logger

	// Cfg is the application configuration
	Cfg *config.Config

	// Metrics records API metrics
	Metrics *metrics.Metrics
}

// GetChild makes a child instance of the base handler with a prefix
func (h BaseHandler) GetChild(prefix string) BaseHandler {
	h.Logger = h.Logger.GetChild(prefix)

	return h
}

// errorResponse is the body of every failed API request
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// dataResponse is the body of every successful API request which returns data
type dataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// RespondJSON sends an object as a JSON encoded response
func (h BaseHandler) RespondJSON(w http.ResponseWriter, status int, resp interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	if err := encoder.Encode(resp); err != nil {
		panic(fmt.Errorf("failed to encode response as JSON: %s", err.Error()))
	}
}

// RespondError sends a failure response with a message for the user
func (h BaseHandler) RespondError(w http.ResponseWriter, status int, msg string) {
	h.RespondJSON(w, status, errorResponse{
		Success: false,
		Error:   msg,
	})
}

// RespondData sends a successful response with data
func (h BaseHandler) RespondData(w http.ResponseWriter, data interface{}) {
	h.RespondJSON(w, http.StatusOK, dataResponse{
		Success: true,
		Data:    data,
	})
}
