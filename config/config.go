package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvDevelopment is the Environment value used when running locally
const EnvDevelopment = "development"

// Config holds application configuration
type Config struct {
	// HTTPAddr is the HTTP server's bind address
	HTTPAddr string `default:":5000" split_words:"true" required:"true"`

	// Environment is the deployment environment name, "development" enables
	// detailed configuration errors in API responses
	Environment string `default:"production" split_words:"true"`

	// GhForkOwner is the GitHub user / organization which owns the fork of the
	// registry repository. Branches are created in this fork.
	GhForkOwner string `split_words:"true"`

	// GhRepoName is the name of the registry repository, the fork and upstream
	// share this name
	GhRepoName string `split_words:"true"`

	// GhUpstreamOwner is the GitHub user / organization which owns the upstream
	// registry repository. Pull requests are opened against it.
	GhUpstreamOwner string `split_words:"true"`

	// GhBaseBranch is the branch new branches are created from and pull requests
	// are opened against
	GhBaseBranch string `default:"main" split_words:"true"`

	// GhToken is a GitHub API token with write access to the fork. Takes precedence
	// over the GitHub App fields.
	GhToken string `split_words:"true"`

	// GhSecretKeyPath is the path to the GitHub App's secret key
	GhSecretKeyPath string `default:"gh.private-key.pem" split_words:"true"`

	// GhIntegrationID is the GitHub App ID
	GhIntegrationID int `split_words:"true"`

	// GhInstallationID is the GitHub App installation ID for the fork
	GhInstallationID int `split_words:"true"`

	// SignatureMaxAge is how old a signed submission message may be
	SignatureMaxAge time.Duration `default:"2m" split_words:"true"`

	// MaxFormBytes is the number of bytes of a multipart form kept in memory
	MaxFormBytes int64 `default:"10485760" split_words:"true"`

	// DbEnabled turns on recording of submissions in MongoDB
	DbEnabled bool `default:"false" split_words:"true"`

	// DbHost is the MongoDB server host
	DbHost string `default:"localhost" split_words:"true"`

	// DbPort is the MongoDB server port
	DbPort int `default:"27017" split_words:"true"`

	// DbUser is the MongoDB user
	DbUser string `default:"hyperlane-deploy-dev" split_words:"true"`

	// DbPassword is the MongoDB password
	DbPassword string `default:"secretpassword" split_words:"true"`

	// DbName is the database to connect to inside MongoDB
	DbName string `default:"hyperlane-deploy-api-dev" split_words:"true"`
}

// NewConfig loads configuration values from environment variables
func NewConfig() (*Config, error) {
	var config Config

	if err := envconfig.Process("app", &config); err != nil {
		return nil, fmt.Errorf("error loading values from environment variables: %s",
			err.Error())
	}

	return &config, nil
}

// IsDevelopment indicates if the server runs in the development environment
func (c Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// UsesGitHubApp indicates if GitHub API requests authenticate as a GitHub App
// installation instead of with a token
func (c Config) UsesGitHubApp() bool {
	return c.GhToken == "" && c.GhIntegrationID != 0 && c.GhInstallationID != 0
}

// MissingGitHubVars returns the names of environment variables which must be set
// before pull requests can be created. Empty if the configuration is complete.
func (c Config) MissingGitHubVars() []string {
	missing := []string{}

	if c.GhForkOwner == "" {
		missing = append(missing, "APP_GH_FORK_OWNER")
	}
	if c.GhRepoName == "" {
		missing = append(missing, "APP_GH_REPO_NAME")
	}
	if c.GhUpstreamOwner == "" {
		missing = append(missing, "APP_GH_UPSTREAM_OWNER")
	}
	if c.GhBaseBranch == "" {
		missing = append(missing, "APP_GH_BASE_BRANCH")
	}
	if c.GhToken == "" && !c.UsesGitHubApp() {
		missing = append(missing, "APP_GH_TOKEN")
	}

	return missing
}

// String returns a log safe version of Config in string form. Redacts any sensative fields.
func (c Config) String() (string, error) {
	if c.DbPassword != "" {
		c.DbPassword = "REDACTED_NOT_EMPTY"
	}

	if c.GhToken != "" {
		c.GhToken = "REDACTED_NOT_EMPTY"
	}

	configBytes, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to convert configuration into JSON: %s", err.Error())
	}

	return string(configBytes), nil
}
