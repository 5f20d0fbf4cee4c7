package registry

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hyperlane-deploy/deploy-api/config"
	"github.com/hyperlane-deploy/deploy-api/metrics"

	"github.com/bradleyfalzon/ghinstallation"
	"github.com/google/go-github/v26/github"
	"golang.org/x/oauth2"
)

// RepoHost is the subset of the repository host API used to submit pull requests.
// Errors are *Error values.
type RepoHost interface {
	// GetBranchSHA returns the SHA of the commit at the tip of a branch in the fork
	GetBranchSHA(ctx context.Context, branch string) (string, error)

	// CreateBranch creates a branch in the fork pointing at sha
	CreateBranch(ctx context.Context, branch, sha string) error

	// DeleteBranch deletes a branch from the fork
	DeleteBranch(ctx context.Context, branch string) error

	// CreateFile commits a new file to a branch of the fork
	CreateFile(ctx context.Context, branch, path, message string, content []byte) error

	// CreatePullRequest opens a pull request from a fork branch into the upstream base
	// branch and returns its HTML URL
	CreatePullRequest(ctx context.Context, branch, title, body string) (string, error)
}

// GitHubRepoHost implements RepoHost with the GitHub REST API
type GitHubRepoHost struct {
	// GH is a GitHub API client with write access to the fork
	GH *github.Client

	// ForkOwner owns the repository branches are created in
	ForkOwner string

	// UpstreamOwner owns the repository pull requests are opened against
	UpstreamOwner string

	// RepoName is the name of both repositories
	RepoName string

	// BaseBranch is the upstream branch pull requests target
	BaseBranch string

	// Metrics records API call durations, optional
	Metrics *metrics.Metrics
}

// NewGitHubClient creates a GitHub API client authenticated with a token, or if no token is
// configured, as a GitHub App installation
func NewGitHubClient(ctx context.Context, cfg *config.Config) (*github.Client, error) {
	if cfg.UsesGitHubApp() {
		transport, err := ghinstallation.NewKeyFromFile(http.DefaultTransport,
			cfg.GhIntegrationID, cfg.GhInstallationID, cfg.GhSecretKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub App transport: %s", err.Error())
		}

		return github.NewClient(&http.Client{Transport: transport}), nil
	}

	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GhToken})

	return github.NewClient(oauth2.NewClient(ctx, tokenSource)), nil
}

// NewGitHubRepoHost creates a GitHubRepoHost for the configured repositories
func NewGitHubRepoHost(gh *github.Client, cfg *config.Config, m *metrics.Metrics) GitHubRepoHost {
	return GitHubRepoHost{
		GH:            gh,
		ForkOwner:     cfg.GhForkOwner,
		UpstreamOwner: cfg.GhUpstreamOwner,
		RepoName:      cfg.GhRepoName,
		BaseBranch:    cfg.GhBaseBranch,
		Metrics:       m,
	}
}

// observe records the duration of an API call started at timer
func (h GitHubRepoHost) observe(op string, timer metrics.Timer, err error) {
	if h.Metrics == nil {
		return
	}

	timer.Finish(h.Metrics.GitHubRequestDurationsMilliseconds.WithLabelValues(op,
		strconv.FormatBool(err == nil)))
}

// GetBranchSHA implements RepoHost
func (h GitHubRepoHost) GetBranchSHA(ctx context.Context, branch string) (sha string, err error) {
	timer := metrics.StartTimer()
	defer func() {
		h.observe("get-ref", timer, err)
	}()

	ref, _, err := h.GH.Git.GetRef(ctx, h.ForkOwner, h.RepoName, "heads/"+branch)
	if err != nil {
		return "", classify("get-ref", err)
	}

	if ref.Object == nil || ref.Object.SHA == nil {
		return "", &Error{
			Op:        "get-ref",
			Condition: Unknown,
			Err:       fmt.Errorf("ref heads/%s has no object SHA", branch),
		}
	}

	return *ref.Object.SHA, nil
}

// CreateBranch implements RepoHost
func (h GitHubRepoHost) CreateBranch(ctx context.Context, branch, sha string) (err error) {
	timer := metrics.StartTimer()
	defer func() {
		h.observe(opCreateRef, timer, err)
	}()

	_, _, err = h.GH.Git.CreateRef(ctx, h.ForkOwner, h.RepoName, &github.Reference{
		Ref: github.String("refs/heads/" + branch),
		Object: &github.GitObject{
			SHA: github.String(sha),
		},
	})

	return classify(opCreateRef, err)
}

// DeleteBranch implements RepoHost
func (h GitHubRepoHost) DeleteBranch(ctx context.Context, branch string) (err error) {
	timer := metrics.StartTimer()
	defer func() {
		h.observe("delete-ref", timer, err)
	}()

	_, err = h.GH.Git.DeleteRef(ctx, h.ForkOwner, h.RepoName, "heads/"+branch)

	return classify("delete-ref", err)
}

// CreateFile implements RepoHost. go-github sends content base64 encoded.
func (h GitHubRepoHost) CreateFile(ctx context.Context, branch, path, message string,
	content []byte) (err error) {

	timer := metrics.StartTimer()
	defer func() {
		h.observe("create-file", timer, err)
	}()

	_, _, err = h.GH.Repositories.CreateFile(ctx, h.ForkOwner, h.RepoName, path,
		&github.RepositoryContentFileOptions{
			Message: github.String(message),
			Content: content,
			Branch:  github.String(branch),
		})

	return classify("create-file", err)
}

// CreatePullRequest implements RepoHost
func (h GitHubRepoHost) CreatePullRequest(ctx context.Context, branch, title,
	body string) (url string, err error) {

	timer := metrics.StartTimer()
	defer func() {
		h.observe("create-pull-request", timer, err)
	}()

	pr, _, err := h.GH.PullRequests.Create(ctx, h.UpstreamOwner, h.RepoName,
		&github.NewPullRequest{
			Title:               github.String(title),
			Head:                github.String(fmt.Sprintf("%s:%s", h.ForkOwner, branch)),
			Base:                github.String(h.BaseBranch),
			Body:                github.String(body),
			MaintainerCanModify: github.Bool(true),
		})
	if err != nil {
		return "", classify("create-pull-request", err)
	}

	return pr.GetHTMLURL(), nil
}
