package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CALCPAD_STORE_PATH", "")
	t.Setenv("CALCPAD_SUGGEST_URL", "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Contains(t, cfg.StorePath, ".calcpad")
	assert.Equal(t, "", cfg.SuggestURL)
	assert.Equal(t, "", cfg.SuggestToken)
	assert.Equal(t, 10*time.Second, cfg.SuggestTimeout)
	assert.Equal(t, 2, cfg.SuggestRetries)
}

func TestLoadConfigExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `store:
  path: /tmp/custom.db
suggest:
  url: https://suggest.example.com
  token: s3cret
  timeout_seconds: 3
  retries: 5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", cfg.StorePath)
	assert.Equal(t, "https://suggest.example.com", cfg.SuggestURL)
	assert.Equal(t, "s3cret", cfg.SuggestToken)
	assert.Equal(t, 3*time.Second, cfg.SuggestTimeout)
	assert.Equal(t, 5, cfg.SuggestRetries)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("CALCPAD_SUGGEST_URL", "https://env.example.com")
	t.Setenv("CALCPAD_SUGGEST_RETRIES", "0")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.SuggestURL)
	assert.Equal(t, 0, cfg.SuggestRetries)
}
