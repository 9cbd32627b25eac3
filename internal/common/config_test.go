package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "https://query1.finance.yahoo.com", config.Yahoo.BaseURL)
	assert.Equal(t, "^GSPC", config.Provider.BenchmarkSymbol)
	assert.Equal(t, 14, config.Analytics.RSIPeriod)
	assert.Equal(t, 30, config.Analytics.MinRegressionObs)
	assert.Equal(t, 252.0, config.Analytics.PeriodsPerYear)
}

func TestLoadFromFileMissingUsesDefaults(t *testing.T) {
	config, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Yahoo.RateLimit, config.Yahoo.RateLimit)
}

func TestLoadFromFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "specula.toml")
	content := `
[logging]
level = "debug"

[provider]
benchmark_symbol = "^IXIC"
max_workers = 4

[analytics]
rsi_period = 21
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "^IXIC", config.Provider.BenchmarkSymbol)
	assert.Equal(t, 4, config.Provider.MaxWorkers)
	assert.Equal(t, 21, config.Analytics.RSIPeriod)
	// Untouched sections keep defaults
	assert.Equal(t, 2.0, config.Analytics.UnusualActivityMultiple)
}

func TestLoadFromFileInvalidRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "specula.toml")
	content := `
[yahoo]
rate_limit = 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SPECULA_LOG_LEVEL", "error")
	t.Setenv("SPECULA_BENCHMARK", "^RUT")
	t.Setenv("SPECULA_MAX_WORKERS", "3")

	config, err := LoadFromFile("")
	require.NoError(t, err)

	assert.Equal(t, "error", config.Logging.Level)
	assert.Equal(t, "^RUT", config.Provider.BenchmarkSymbol)
	assert.Equal(t, 3, config.Provider.MaxWorkers)
}
