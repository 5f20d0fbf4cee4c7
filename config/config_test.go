package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnv sets environment variables for the duration of a test
func setEnv(t *testing.T, vars map[string]string) {
	for key, value := range vars {
		old, had := os.LookupEnv(key)

		err := os.Setenv(key, value)
		require.NoErrorf(t, err, "failed to set \"%s\"", key)

		t.Cleanup(func() {
			if had {
				os.Setenv(key, old)
			} else {
				os.Unsetenv(key)
			}
		})
	}
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.Equal(t, "main", cfg.GhBaseBranch)
	assert.Equal(t, 2*time.Minute, cfg.SignatureMaxAge)
	assert.False(t, cfg.DbEnabled)
	assert.False(t, cfg.IsDevelopment())
}

func TestNewConfigFromEnv(t *testing.T) {
	setEnv(t, map[string]string{
		"APP_ENVIRONMENT":       "development",
		"APP_GH_FORK_OWNER":     "deploy-bot",
		"APP_GH_REPO_NAME":      "hyperlane-registry",
		"APP_GH_UPSTREAM_OWNER": "hyperlane-xyz",
		"APP_GH_TOKEN":          "ghp_secret",
		"APP_SIGNATURE_MAX_AGE": "90s",
	})

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "deploy-bot", cfg.GhForkOwner)
	assert.Equal(t, "hyperlane-registry", cfg.GhRepoName)
	assert.Equal(t, "hyperlane-xyz", cfg.GhUpstreamOwner)
	assert.Equal(t, 90*time.Second, cfg.SignatureMaxAge)
	assert.Empty(t, cfg.MissingGitHubVars())
}

func TestMissingGitHubVars(t *testing.T) {
	cfg := Config{GhBaseBranch: "main"}

	assert.Equal(t, []string{
		"APP_GH_FORK_OWNER",
		"APP_GH_REPO_NAME",
		"APP_GH_UPSTREAM_OWNER",
		"APP_GH_TOKEN",
	}, cfg.MissingGitHubVars())

	cfg.GhForkOwner = "fork"
	cfg.GhRepoName = "repo"
	cfg.GhUpstreamOwner = "upstream"
	cfg.GhIntegrationID = 12
	cfg.GhInstallationID = 34

	assert.True(t, cfg.UsesGitHubApp())
	assert.Empty(t, cfg.MissingGitHubVars())
}

func TestStringRedactsSecrets(t *testing.T) {
	cfg := Config{
		GhToken:    "ghp_secret",
		DbPassword: "hunter2",
	}

	str, err := cfg.String()
	require.NoError(t, err)

	assert.False(t, strings.Contains(str, "ghp_secret"))
	assert.False(t, strings.Contains(str, "hunter2"))
	assert.Contains(t, str, "REDACTED_NOT_EMPTY")
}
