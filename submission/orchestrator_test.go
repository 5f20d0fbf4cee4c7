package submission

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hyperlane-deploy/deploy-api/metrics"
	"github.com/hyperlane-deploy/deploy-api/models"
	"github.com/hyperlane-deploy/deploy-api/registry"

	"github.com/Noah-Huppert/golog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// {{{1 Mocks
type mockHost struct {
	mock.Mock
}

func (m *mockHost) GetBranchSHA(ctx context.Context, branch string) (string, error) {
	args := m.Called(branch)
	return args.String(0), args.Error(1)
}

func (m *mockHost) CreateBranch(ctx context.Context, branch, sha string) error {
	return m.Called(branch, sha).Error(0)
}

func (m *mockHost) DeleteBranch(ctx context.Context, branch string) error {
	return m.Called(branch).Error(0)
}

func (m *mockHost) CreateFile(ctx context.Context, branch, path, message string,
	content []byte) error {
	return m.Called(branch, path, content).Error(0)
}

func (m *mockHost) CreatePullRequest(ctx context.Context, branch, title, body string) (string, error) {
	args := m.Called(branch, title, body)
	return args.String(0), args.Error(1)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordSubmission(ctx context.Context, record models.SubmissionRecord) error {
	return m.Called(record).Error(0)
}

type fixedID string

func (f fixedID) NewID() string {
	return string(f)
}

// {{{1 Helpers
const (
	prURL   = "https://github.com/hyperlane-xyz/hyperlane-registry/pull/1"
	baseSHA = "base-sha"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func notFound() error {
	return &registry.Error{Op: "get-ref", Condition: registry.NotFound, Err: fmt.Errorf("404")}
}

func fileExists() error {
	return &registry.Error{Op: "create-file", Condition: registry.Conflict, Err: fmt.Errorf("422")}
}

func testRequest() models.SubmissionRequest {
	return models.SubmissionRequest{
		DeployConfigFile: models.ConfigFile{
			Path:    "deployments/warp_routes/USDC/ethereum-arbitrum-deploy.yaml",
			Content: "ethereum:\n  type: collateral\n",
		},
		WarpConfigFile: models.ConfigFile{
			Path:    "deployments/warp_routes/USDC/ethereum-arbitrum-config.yaml",
			Content: "tokens:\n  - chainName: ethereum\n",
		},
		WarpRouteID: "USDC/ethereum-arbitrum",
		Username:    "alice",
	}
}

func newTestOrchestrator(host *mockHost) (Orchestrator, *metrics.Metrics) {
	m := metrics.NewMetrics(prometheus.NewRegistry())

	return Orchestrator{
		Host:       host,
		BaseBranch: "main",
		IDs:        fixedID("brave-silver-otter"),
		Logger:     golog.NewStdLogger("test"),
		Metrics:    m,
		Now: func() time.Time {
			return now
		},
	}, m
}

func branchOf(req models.SubmissionRequest) string {
	return BranchName(req.WarpRouteID, req.DeployConfigFile.Content, req.WarpConfigFile.Content)
}

// {{{1 Tests
func TestBranchName(t *testing.T) {
	a := BranchName("USDC/x", "a: 1\n", "b: 2\n")
	b := BranchName("USDC/x", "a: 1\n", "b: 2\n")
	c := BranchName("USDC/x", "a: 1\n", "b: 3\n")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^USDC/x-0x[0-9a-f]{64}$`, a)

	// keccak256 of the empty input
	assert.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		Fingerprint("", "", ""))
}

func TestChangeset(t *testing.T) {
	assert.Equal(t, ".changeset/brave-silver-otter.md", ChangesetPath("brave-silver-otter"))

	content, err := ChangesetContent("USDC/ethereum-arbitrum")
	require.NoError(t, err)

	assert.Regexp(t, `^---\n['"]?@hyperlane-xyz/registry['"]?: minor\n---\n`, string(content))
	assert.Contains(t, string(content), "USDC/ethereum-arbitrum")
}

func TestSubmitCreatesPullRequest(t *testing.T) {
	req := testRequest()
	req.Logo = &models.LogoFile{
		Path:     "deployments/warp_routes/USDC/logo.svg",
		MIMEType: "image/svg+xml",
		Content:  []byte("<svg/>"),
	}
	branch := branchOf(req)

	host := &mockHost{}
	host.On("GetBranchSHA", branch).Return("", notFound())
	host.On("GetBranchSHA", "main").Return(baseSHA, nil)
	host.On("CreateBranch", branch, baseSHA).Return(nil)
	host.On("CreateFile", branch, mock.Anything, mock.Anything).Return(nil)
	host.On("CreatePullRequest", branch, mock.Anything, mock.Anything).Return(prURL, nil)

	recorder := &mockRecorder{}
	recorder.On("RecordSubmission", models.SubmissionRecord{
		WarpRouteID: req.WarpRouteID,
		BranchName:  branch,
		PRURL:       prURL,
		Username:    "alice",
		CreatedAt:   now,
	}).Return(nil)

	o, m := newTestOrchestrator(host)
	o.Recorder = recorder

	result, err := o.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, &models.PullRequestResult{Success: true, PRURL: prURL}, result)

	// Files are committed in order
	var paths []string
	for _, call := range host.Calls {
		if call.Method == "CreateFile" {
			paths = append(paths, call.Arguments.String(1))
		}
	}
	assert.Equal(t, []string{
		req.DeployConfigFile.Path,
		req.WarpConfigFile.Path,
		".changeset/brave-silver-otter.md",
		req.Logo.Path,
	}, paths)

	host.AssertCalled(t, "CreatePullRequest", branch,
		"feat: add USDC/ethereum-arbitrum warp route by @alice", mock.Anything)
	host.AssertNotCalled(t, "DeleteBranch", mock.Anything)
	recorder.AssertExpectations(t)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues("created")))
}

func TestSubmitDuplicate(t *testing.T) {
	req := testRequest()

	host := &mockHost{}
	host.On("GetBranchSHA", branchOf(req)).Return("existing", nil)

	o, m := newTestOrchestrator(host)

	_, err := o.Submit(context.Background(), req)
	require.Error(t, err)

	subErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, Conflict, subErr.Kind)
	assert.Equal(t, MsgDuplicate, subErr.Message)

	host.AssertNotCalled(t, "CreateBranch", mock.Anything, mock.Anything)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues("duplicate")))
}

func TestSubmitFilesExistDeletesBranch(t *testing.T) {
	req := testRequest()
	branch := branchOf(req)

	host := &mockHost{}
	host.On("GetBranchSHA", branch).Return("", notFound())
	host.On("GetBranchSHA", "main").Return(baseSHA, nil)
	host.On("CreateBranch", branch, baseSHA).Return(nil)
	host.On("CreateFile", branch, req.DeployConfigFile.Path, mock.Anything).Return(nil)
	host.On("CreateFile", branch, req.WarpConfigFile.Path, mock.Anything).Return(fileExists())
	host.On("DeleteBranch", branch).Return(nil)

	o, _ := newTestOrchestrator(host)

	_, err := o.Submit(context.Background(), req)
	subErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, FilesExist, subErr.Kind)
	assert.Equal(t, MsgFilesExist, subErr.Message)

	host.AssertCalled(t, "DeleteBranch", branch)
	host.AssertNotCalled(t, "CreatePullRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitFailedCompensationIsFatal(t *testing.T) {
	req := testRequest()
	branch := branchOf(req)

	host := &mockHost{}
	host.On("GetBranchSHA", branch).Return("", notFound())
	host.On("GetBranchSHA", "main").Return(baseSHA, nil)
	host.On("CreateBranch", branch, baseSHA).Return(nil)
	host.On("CreateFile", branch, mock.Anything, mock.Anything).Return(fileExists())
	host.On("DeleteBranch", branch).Return(fmt.Errorf("delete refused"))

	o, _ := newTestOrchestrator(host)

	_, err := o.Submit(context.Background(), req)
	subErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, Fatal, subErr.Kind)
	assert.Contains(t, subErr.Error(), "delete refused")
}

func TestSubmitOtherUploadErrorLeavesBranch(t *testing.T) {
	req := testRequest()
	branch := branchOf(req)

	host := &mockHost{}
	host.On("GetBranchSHA", branch).Return("", notFound())
	host.On("GetBranchSHA", "main").Return(baseSHA, nil)
	host.On("CreateBranch", branch, baseSHA).Return(nil)
	host.On("CreateFile", branch, mock.Anything, mock.Anything).Return(&registry.Error{
		Op:        "create-file",
		Condition: registry.Unknown,
		Err:       fmt.Errorf("502"),
	})

	o, m := newTestOrchestrator(host)

	_, err := o.Submit(context.Background(), req)
	subErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, Fatal, subErr.Kind)

	host.AssertNotCalled(t, "DeleteBranch", mock.Anything)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues("failed")))
}

func TestSubmitIdempotencyCheckError(t *testing.T) {
	req := testRequest()

	host := &mockHost{}
	host.On("GetBranchSHA", branchOf(req)).Return("", &registry.Error{
		Op:        "get-ref",
		Condition: registry.Unknown,
		Err:       fmt.Errorf("timeout"),
	})

	o, _ := newTestOrchestrator(host)

	_, err := o.Submit(context.Background(), req)
	subErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, Fatal, subErr.Kind)
	host.AssertNotCalled(t, "CreateBranch", mock.Anything, mock.Anything)
}

func TestSubmitRecorderFailureIgnored(t *testing.T) {
	req := testRequest()
	branch := branchOf(req)

	host := &mockHost{}
	host.On("GetBranchSHA", branch).Return("", notFound())
	host.On("GetBranchSHA", "main").Return(baseSHA, nil)
	host.On("CreateBranch", branch, baseSHA).Return(nil)
	host.On("CreateFile", branch, mock.Anything, mock.Anything).Return(nil)
	host.On("CreatePullRequest", branch, mock.Anything, mock.Anything).Return(prURL, nil)

	recorder := &mockRecorder{}
	recorder.On("RecordSubmission", mock.Anything).Return(fmt.Errorf("db down"))

	o, _ := newTestOrchestrator(host)
	o.Recorder = recorder

	result, err := o.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, prURL, result.PRURL)
}

func TestPullRequestText(t *testing.T) {
	req := testRequest()
	req.Username = ""

	title, body := pullRequestText(req)
	assert.Equal(t, "feat: add USDC/ethereum-arbitrum warp route", title)
	assert.NotContains(t, body, "Submitted by")

	req.Username = "alice"
	req.Organization = "acme"
	title, body = pullRequestText(req)
	assert.Equal(t, "feat: add USDC/ethereum-arbitrum warp route by @alice from acme", title)
	assert.Contains(t, body, "Submitted by @alice from acme.")
}
