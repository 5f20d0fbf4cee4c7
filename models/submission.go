package models

import (
	"time"
)

// ConfigFile is a file the submitter wants added to the registry repository
type ConfigFile struct {
	// Path of the file relative to the registry repository root
	Path string `json:"path" validate:"required"`

	// Content of the file
	Content string `json:"content" validate:"required"`
}

// PRBody is the JSON encoded prBody form field of a pull request submission
type PRBody struct {
	// DeployConfig is the warp route deploy config file
	DeployConfig ConfigFile `json:"deployConfig"`

	// WarpConfig is the warp core config file produced by the deployment
	WarpConfig ConfigFile `json:"warpConfig"`

	// WarpRouteID identifies the warp route in the registry, ex., USDC/ethereum-arbitrum
	WarpRouteID string `json:"warpRouteId" validate:"required"`

	// Organization is an optional GitHub organization to credit
	Organization string `json:"organization,omitempty" validate:"omitempty,github_name"`

	// Username is an optional GitHub user to credit
	Username string `json:"username,omitempty" validate:"omitempty,github_name"`
}

// LogoFile is a token logo uploaded alongside a submission
type LogoFile struct {
	// Path of the logo relative to the registry repository root
	Path string

	// MIMEType is the sniffed content type of Content
	MIMEType string

	// Content is the raw logo
	Content []byte
}

// SubmissionRequest is a fully parsed and validated pull request submission.
// Config file contents are canonical YAML.
type SubmissionRequest struct {
	// DeployConfigFile is the warp route deploy config
	DeployConfigFile ConfigFile

	// WarpConfigFile is the warp core config
	WarpConfigFile ConfigFile

	// WarpRouteID identifies the warp route
	WarpRouteID string

	// Organization to credit, may be empty
	Organization string

	// Username to credit, may be empty
	Username string

	// Logo is nil if no logo was uploaded
	Logo *LogoFile
}

// PullRequestResult is the outcome of a submission
type PullRequestResult struct {
	// Success is true if a pull request was opened
	Success bool `json:"success"`

	// PRURL is the HTML URL of the opened pull request
	PRURL string `json:"prUrl,omitempty"`

	// Error describes why the submission failed
	Error string `json:"error,omitempty"`
}

// SubmissionRecord is saved every time a submission opens a pull request
type SubmissionRecord struct {
	// WarpRouteID of the submitted warp route
	WarpRouteID string `bson:"warp_route_id" json:"warpRouteId"`

	// BranchName is the content addressed branch the files were committed to
	BranchName string `bson:"branch_name" json:"branchName"`

	// PRURL is the HTML URL of the pull request
	PRURL string `bson:"pr_url" json:"prUrl"`

	// Username which was credited, may be empty
	Username string `bson:"username,omitempty" json:"username,omitempty"`

	// Organization which was credited, may be empty
	Organization string `bson:"organization,omitempty" json:"organization,omitempty"`

	// CreatedAt is when the pull request was opened
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
