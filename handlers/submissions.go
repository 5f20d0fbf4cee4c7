package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hyperlane-deploy/deploy-api/models"

	"github.com/gorilla/mux"
)

// SubmissionLister lists the submission records of a warp route
type SubmissionLister interface {
	ListSubmissions(ctx context.Context, warpRouteID string) ([]models.SubmissionRecord, error)
}

// submissionsData is the data of a submissions response
type submissionsData struct {
	Submissions []models.SubmissionRecord `json:"submissions"`
}

// SubmissionsHandler returns the pull requests opened for a warp route
type SubmissionsHandler struct {
	BaseHandler

	// Lister reads submission records
	Lister SubmissionLister
}

// ServeHTTP implements http.Handler
func (h SubmissionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	warpRouteID := mux.Vars(r)["warpRouteId"]

	records, err := h.Lister.ListSubmissions(r.Context(), warpRouteID)
	if err != nil {
		panic(fmt.Errorf("failed to list submissions of %s: %s", warpRouteID, err.Error()))
	}

	h.RespondData(w, submissionsData{Submissions: records})
}
