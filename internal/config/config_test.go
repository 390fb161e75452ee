package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dazhuang0717-violet/communicationscorer/internal/score"
)

func chtemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chtemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://r.jina.ai", cfg.Reader.BaseURL)
	assert.Equal(t, 8, cfg.Reader.TimeoutSecs)
	assert.Equal(t, 10, cfg.Scrape.DirectTimeoutSecs)
	assert.Equal(t, "gateway", cfg.Judge.Backend)
	assert.Equal(t, 2, cfg.Judge.RateLimitPauseSecs)
	assert.NotEmpty(t, cfg.Gateway.Models)
	assert.InDelta(t, 1.0, cfg.Gateway.RequestsPerSec, 0.001)
	assert.NotEmpty(t, cfg.Claude.Models)
	assert.Equal(t, 1, cfg.Batch.Concurrency)
	assert.Equal(t, "general", cfg.Campaign.Audience)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, score.DefaultWeights(), cfg.Scoring.Weights())
}

func TestLoadFromYAML(t *testing.T) {
	dir := chtemp(t)

	yaml := `
judge:
  backend: claude
batch:
  concurrency: 4
scoring:
  tier_weight: 0.5
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "claude", cfg.Judge.Backend)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
	assert.InDelta(t, 0.5, cfg.Scoring.TierWeight, 0.001)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply for unset values
	assert.Equal(t, 8, cfg.Reader.TimeoutSecs)
	assert.InDelta(t, 0.6, cfg.Scoring.VolumeQualityWeight, 0.001)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chtemp(t)

	yaml := `
judge:
  backend: claude
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("COMMSCORE_JUDGE_BACKEND", "gateway")
	t.Setenv("COMMSCORE_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "gateway", cfg.Judge.Backend)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chtemp(t)

	t.Setenv("COMMSCORE_GATEWAY_KEY", "sk-test")
	t.Setenv("COMMSCORE_BATCH_CONCURRENCY", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.Gateway.Key)
	assert.Equal(t, 5, cfg.Batch.Concurrency)
}

func TestCredentialFollowsBackend(t *testing.T) {
	cfg := &Config{
		Gateway: GatewayConfig{Key: "gw-key", Models: []string{"g1"}},
		Claude:  ClaudeConfig{Key: "cl-key", Models: []string{"c1"}},
	}

	cfg.Judge.Backend = "gateway"
	assert.Equal(t, "gw-key", cfg.Credential())
	assert.Equal(t, []string{"g1"}, cfg.Models())

	cfg.Judge.Backend = "claude"
	assert.Equal(t, "cl-key", cfg.Credential())
	assert.Equal(t, []string{"c1"}, cfg.Models())
}

func validConfig() *Config {
	cfg := &Config{}
	cfg.Judge.Backend = "gateway"
	cfg.Batch.Concurrency = 1
	cfg.Reader.TimeoutSecs = 8
	cfg.Scrape.DirectTimeoutSecs = 10
	return cfg
}

func TestValidateOK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateBadBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Judge.Backend = "openai"

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "judge.backend")
}

func TestValidateConcurrencyBounds(t *testing.T) {
	cfg := validConfig()

	cfg.Batch.Concurrency = 0
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "batch.concurrency must be between 1 and 20")

	cfg.Batch.Concurrency = 21
	assert.Error(t, cfg.Validate())

	cfg.Batch.Concurrency = 20
	assert.NoError(t, cfg.Validate())
}

func TestValidateNegativeWeight(t *testing.T) {
	cfg := validConfig()
	cfg.Scoring.TierWeight = -0.4

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "scoring weights")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
