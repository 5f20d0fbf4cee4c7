package submission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hyperlane-deploy/deploy-api/metrics"
	"github.com/hyperlane-deploy/deploy-api/models"
	"github.com/hyperlane-deploy/deploy-api/registry"

	"github.com/Noah-Huppert/golog"
)

// Recorder saves a record of every opened pull request
type Recorder interface {
	RecordSubmission(ctx context.Context, record models.SubmissionRecord) error
}

// Submission outcomes, used as metric labels
const (
	outcomeCreated    = "created"
	outcomeDuplicate  = "duplicate"
	outcomeFilesExist = "files_exist"
	outcomeFailed     = "failed"
)

// Orchestrator turns a validated submission into a pull request against the registry
//
// For each submission:
//
//   - A branch name is derived from the submitted content
//   - If the branch exists the submission is rejected as a duplicate
//   - The branch is created from the fork's base branch
//   - Each file is committed to the branch, in order
//   - A pull request is opened into the upstream repository
//
// If a file already exists in the fork the branch is deleted again.
type Orchestrator struct {
	// Host is the repository host the branch and pull request are created on
	Host registry.RepoHost

	// BaseBranch is the fork branch new branches start from
	BaseBranch string

	// IDs generates changeset IDs
	IDs IDGenerator

	// Recorder saves opened pull requests, optional
	Recorder Recorder

	// Logger logs information
	Logger golog.Logger

	// Metrics counts outcomes, optional
	Metrics *metrics.Metrics

	// Now returns the current time
	Now func() time.Time
}

// NewOrchestrator creates an Orchestrator with petname changeset IDs and the system clock
func NewOrchestrator(host registry.RepoHost, baseBranch string, logger golog.Logger,
	m *metrics.Metrics) Orchestrator {

	return Orchestrator{
		Host:       host,
		BaseBranch: baseBranch,
		IDs:        PetnameIDGenerator{},
		Logger:     logger,
		Metrics:    m,
		Now:        time.Now,
	}
}

// remoteFile is a file committed to the submission branch
type remoteFile struct {
	path    string
	content []byte
}

// Submit opens a pull request for req. Errors are *Error values.
func (o Orchestrator) Submit(ctx context.Context,
	req models.SubmissionRequest) (result *models.PullRequestResult, err error) {

	defer func() {
		o.count(err)
	}()

	// {{{1 Check idempotency
	branch := BranchName(req.WarpRouteID, req.DeployConfigFile.Content,
		req.WarpConfigFile.Content)

	_, err = o.Host.GetBranchSHA(ctx, branch)
	if err == nil {
		return nil, &Error{Kind: Conflict, Message: MsgDuplicate}
	} else if registry.ConditionOf(err) != registry.NotFound {
		return nil, fatal("failed to check for existing branch", err)
	}

	// {{{1 Build change set
	files, err := o.changeSet(req)
	if err != nil {
		return nil, fatal("failed to build change set", err)
	}

	// {{{1 Create branch
	baseSHA, err := o.Host.GetBranchSHA(ctx, o.BaseBranch)
	if err != nil {
		return nil, fatal(fmt.Sprintf("failed to get %s branch", o.BaseBranch), err)
	}

	if err := o.Host.CreateBranch(ctx, branch, baseSHA); err != nil {
		if registry.ConditionOf(err) == registry.Conflict {
			return nil, &Error{Kind: Conflict, Message: MsgDuplicate}
		}
		return nil, fatal("failed to create branch", err)
	}

	o.Logger.Debugf("created branch %s from %s", branch, baseSHA)

	// {{{1 Upload files
	for _, file := range files {
		msg := fmt.Sprintf("feat: add %s", file.path)
		err := o.Host.CreateFile(ctx, branch, file.path, msg, file.content)
		if err == nil {
			continue
		}

		if registry.ConditionOf(err) != registry.Conflict {
			return nil, fatal(fmt.Sprintf("failed to upload %s", file.path), err)
		}

		// {{{2 Compensate
		o.Logger.Infof("%s already exists, deleting branch %s", file.path, branch)

		if delErr := o.Host.DeleteBranch(ctx, branch); delErr != nil {
			return nil, fatal("failed to delete branch", delErr)
		}

		return nil, &Error{Kind: FilesExist, Message: MsgFilesExist, Err: err}
	}

	// {{{1 Open pull request
	title, body := pullRequestText(req)

	prURL, err := o.Host.CreatePullRequest(ctx, branch, title, body)
	if err != nil {
		return nil, fatal("failed to create pull request", err)
	}

	o.Logger.Infof("opened %s for %s", prURL, req.WarpRouteID)

	// {{{1 Record
	if o.Recorder != nil {
		record := models.SubmissionRecord{
			WarpRouteID:  req.WarpRouteID,
			BranchName:   branch,
			PRURL:        prURL,
			Username:     req.Username,
			Organization: req.Organization,
			CreatedAt:    o.Now(),
		}
		if recErr := o.Recorder.RecordSubmission(ctx, record); recErr != nil {
			o.Logger.Errorf("failed to record submission %s: %s", prURL, recErr.Error())
		}
	}

	return &models.PullRequestResult{
		Success: true,
		PRURL:   prURL,
	}, nil
}

// changeSet returns the files committed for req, in commit order
func (o Orchestrator) changeSet(req models.SubmissionRequest) ([]remoteFile, error) {
	changeset, err := ChangesetContent(req.WarpRouteID)
	if err != nil {
		return nil, err
	}

	files := []remoteFile{
		{path: req.DeployConfigFile.Path, content: []byte(req.DeployConfigFile.Content)},
		{path: req.WarpConfigFile.Path, content: []byte(req.WarpConfigFile.Content)},
		{path: ChangesetPath(o.IDs.NewID()), content: changeset},
	}

	if req.Logo != nil {
		files = append(files, remoteFile{path: req.Logo.Path, content: req.Logo.Content})
	}

	return files, nil
}

// pullRequestText returns the title and body of the pull request for req
func pullRequestText(req models.SubmissionRequest) (string, string) {
	title := fmt.Sprintf("feat: add %s warp route", req.WarpRouteID)

	var credits []string
	if len(req.Username) > 0 {
		credits = append(credits, "@"+req.Username)
	}
	if len(req.Organization) > 0 {
		credits = append(credits, req.Organization)
	}

	if len(credits) > 0 {
		title = fmt.Sprintf("%s by %s", title, strings.Join(credits, " from "))
	}

	body := fmt.Sprintf("### Description\n\nAdds the deploy config and warp config "+
		"for the %s warp route.\n", req.WarpRouteID)
	if len(credits) > 0 {
		body += fmt.Sprintf("\nSubmitted by %s.\n", strings.Join(credits, " from "))
	}
	if req.Logo != nil {
		body += fmt.Sprintf("\nIncludes a token logo at `%s`.\n", req.Logo.Path)
	}

	return title, body
}

// count records the outcome of a submission
func (o Orchestrator) count(err error) {
	if o.Metrics == nil {
		return
	}

	outcome := outcomeCreated
	if subErr, ok := err.(*Error); ok {
		switch subErr.Kind {
		case Conflict:
			outcome = outcomeDuplicate
		case FilesExist:
			outcome = outcomeFilesExist
		default:
			outcome = outcomeFailed
		}
	} else if err != nil {
		outcome = outcomeFailed
	}

	o.Metrics.SubmissionsTotal.WithLabelValues(outcome).Inc()
}
