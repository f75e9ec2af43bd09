package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func clearSecrets(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_POSTGRES_USER", "APP_POSTGRES_PASSWORD", "APP_POSTGRES_DB", "APP_POSTGRES_HOST", "APP_SQLITE_PATH",
		"APP_PIPELINE_SINK", "APP_PIPELINE_OUTPUT", "APP_PIPELINE_ENRICHMENTS",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestConfigLoad_FromYAMLAndEnv(t *testing.T) {
	clearSecrets(t)
	// Minimal YAML; secrets will come from ENV
	yaml := `
app:
  name: hockey-xg-preprocessor
  version: 0.1.0
  env: test
  port: 18080

logger:
  level: info
  format: json

pipeline:
  input: testdata/pbp.json
  output: out.csv
  separator: ","
  enrichments: [add_prev_play_name]
  strict: false
  sink: postgres

postgres:
  host: 127.0.0.1
  port: 5432
  sslmode: disable
  max_conns: 5
  min_conns: 1
`
	path := writeTempConfig(t, yaml)

	t.Setenv("APP_POSTGRES_USER", "testuser")
	t.Setenv("APP_POSTGRES_PASSWORD", "testpass")
	t.Setenv("APP_POSTGRES_DB", "testdb")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 18080, cfg.App.Port)
	assert.Equal(t, "testuser", cfg.Postgres.User)
	assert.Equal(t, "testpass", cfg.Postgres.Password)
	assert.Equal(t, "testdb", cfg.Postgres.DBName)
	assert.Equal(t, "127.0.0.1", cfg.Postgres.Host)
	assert.Equal(t, "testdata/pbp.json", cfg.Pipeline.Input)
	assert.Equal(t, []string{"add_prev_play_name"}, cfg.Pipeline.Enrichments)
	assert.False(t, cfg.Pipeline.Strict)
	assert.Equal(t, ',', cfg.Pipeline.SeparatorRune())
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestConfigLoad_Defaults(t *testing.T) {
	clearSecrets(t)
	path := writeTempConfig(t, "app:\n  env: test\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.SinkNone, cfg.Pipeline.Sink)
	assert.Equal(t, ';', cfg.Pipeline.SeparatorRune())
	assert.True(t, cfg.Pipeline.Strict)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "data/pbp_raw.json", cfg.Pipeline.Input)
}

func TestConfigLoad_PostgresSinkNeedsCredentials(t *testing.T) {
	clearSecrets(t)
	path := writeTempConfig(t, `
pipeline:
  sink: postgres
postgres:
  host: localhost
`)
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres.user")
}

func TestConfigLoad_Invalid(t *testing.T) {
	clearSecrets(t)
	cases := map[string]string{
		"unknown sink":   "pipeline:\n  sink: kafka\n",
		"long separator": "pipeline:\n  separator: ';;'\n",
		"bad port":       "app:\n  port: 70000\n",
	}
	for name, yaml := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeTempConfig(t, yaml))
			assert.Error(t, err)
		})
	}
}

func TestConfigLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	clearSecrets(t)
	cfg, err := config.Default()
	require.NoError(t, err)
	assert.Equal(t, config.SinkNone, cfg.Pipeline.Sink)
	assert.Equal(t, "data/shots.db", cfg.SQLite.Path)
}

func TestDefault_EnvOnly(t *testing.T) {
	clearSecrets(t)
	t.Setenv("APP_PIPELINE_SINK", "postgres")
	t.Setenv("APP_POSTGRES_USER", "u")
	t.Setenv("APP_POSTGRES_PASSWORD", "p")
	t.Setenv("APP_POSTGRES_DB", "d")
	t.Setenv("APP_POSTGRES_HOST", "db.internal")
	t.Setenv("APP_PIPELINE_OUTPUT", "out.csv")
	t.Setenv("APP_PIPELINE_ENRICHMENTS", "add_prev_play_name")

	cfg, err := config.Default()
	require.NoError(t, err)
	assert.Equal(t, config.SinkPostgres, cfg.Pipeline.Sink)
	assert.Equal(t, "u", cfg.Postgres.User)
	assert.Equal(t, "p", cfg.Postgres.Password)
	assert.Equal(t, "d", cfg.Postgres.DBName)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, "out.csv", cfg.Pipeline.Output)
	assert.Equal(t, []string{"add_prev_play_name"}, cfg.Pipeline.Enrichments)
}
