package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/hyperlane-deploy/deploy-api/models"
	"github.com/hyperlane-deploy/deploy-api/parsing"
	"github.com/hyperlane-deploy/deploy-api/submission"
)

// MsgMissingConfig is shown outside development when the server can not create pull requests
const MsgMissingConfig = "Missing server configuration"

// SubmissionParser reads pull request submission forms
type SubmissionParser interface {
	Parse(r *http.Request) (*models.SubmissionRequest, *models.SignatureVerification, error)
}

// SignatureChecker checks submission signatures
type SignatureChecker interface {
	Verify(sig models.SignatureVerification) error
}

// Submitter opens pull requests for submissions
type Submitter interface {
	Submit(ctx context.Context, req models.SubmissionRequest) (*models.PullRequestResult, error)
}

// prURLData is the data of a successful create pull request response
type prURLData struct {
	PRURL string `json:"prUrl"`
}

// CreatePRHandler opens a registry pull request for a signed submission
type CreatePRHandler struct {
	BaseHandler

	// Parser reads the submission form
	Parser SubmissionParser

	// Verifier checks the submitter's signature
	Verifier SignatureChecker

	// Submitter opens the pull request
	Submitter Submitter
}

// ServeHTTP implements http.Handler
func (h CreatePRHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// {{{1 Check configuration
	if missing := h.Cfg.MissingGitHubVars(); len(missing) > 0 {
		h.Logger.Errorf("cannot create pull requests, missing: %s", strings.Join(missing, ", "))

		msg := MsgMissingConfig
		if h.Cfg.IsDevelopment() {
			msg = fmt.Sprintf("%s: %s", MsgMissingConfig, strings.Join(missing, ", "))
		}

		h.RespondError(w, http.StatusInternalServerError, msg)
		return
	}

	// {{{1 Parse
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxFormBytes)

	req, sig, err := h.Parser.Parse(r)
	if err != nil {
		if parseErr, ok := err.(parsing.ParseError); ok {
			h.Logger.Debugf("rejected submission: %s", parseErr.Error())
			h.RespondError(w, http.StatusBadRequest, parseErr.UserError())
			return
		}

		panic(fmt.Errorf("failed to parse submission: %s", err.Error()))
	}

	// {{{1 Verify signature
	if err := h.Verifier.Verify(*sig); err != nil {
		h.Logger.Debugf("rejected signature of %s: %s", sig.Address, err.Error())
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// {{{1 Submit
	result, err := h.Submitter.Submit(r.Context(), *req)
	if err != nil {
		subErr, ok := err.(*submission.Error)
		if !ok {
			panic(fmt.Errorf("failed to submit %s: %s", req.WarpRouteID, err.Error()))
		}

		switch subErr.Kind {
		case submission.Conflict:
			h.RespondError(w, http.StatusBadRequest, subErr.Message)
		case submission.FilesExist:
			h.RespondError(w, http.StatusNotFound, subErr.Message)
		default:
			h.Logger.Errorf("failed to submit %s: %s", req.WarpRouteID, subErr.Error())
			h.RespondError(w, http.StatusInternalServerError, subErr.Error())
		}
		return
	}

	h.RespondData(w, prURLData{PRURL: result.PRURL})
}
