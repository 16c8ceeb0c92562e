package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// When
	cfg, err := LoadConfig("")

	// Then
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "http", cfg.Source.Kind)
	assert.Equal(t, "http://localhost:3000", cfg.Source.BaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_ValidYAML_PopulatesAllFields(t *testing.T) {
	// Given
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  addr: ":9000"
  request_timeout: 5s
  rate_limit: 0
source:
  kind: FILE
  root: /srv/reports
  timeout: 2s
  prior_insights_path: /2023/analysis_insights.json
log:
  level: debug`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// When
	cfg, err := LoadConfig(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 0, cfg.Server.RateLimit)
	assert.Equal(t, "file", cfg.Source.Kind)
	assert.Equal(t, "/srv/reports", cfg.Source.Root)
	assert.Equal(t, 2*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "/2023/analysis_insights.json", cfg.Source.PriorInsightsPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	// Given
	t.Setenv("FMCG_SOURCE_BASE_URL", "https://reports.example.com")
	t.Setenv("FMCG_SERVER_RATE_LIMIT", "10")

	// When
	cfg, err := LoadConfig("")

	// Then
	require.NoError(t, err)
	assert.Equal(t, "https://reports.example.com", cfg.Source.BaseURL)
	assert.Equal(t, 10, cfg.Server.RateLimit)
}

func TestLoadConfig_InvalidYAML_ReturnsError(t *testing.T) {
	// Given
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: addr: bad: yaml"), 0o644))

	// When
	_, err := LoadConfig(path)

	// Then
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown kind", func(c *Config) { c.Source.Kind = "ftp" }, true},
		{"file without root", func(c *Config) { c.Source.Kind = "file" }, true},
		{"s3 with bucket", func(c *Config) { c.Source.Kind = "s3"; c.Source.Bucket = "reports" }, false},
		{"s3 without bucket", func(c *Config) { c.Source.Kind = "s3" }, true},
		{"http without base url", func(c *Config) { c.Source.BaseURL = "" }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"zero timeout", func(c *Config) { c.Source.Timeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig("")
			require.NoError(t, err)

			tt.mutate(cfg)

			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	// Given
	path := filepath.Join(t.TempDir(), ".fmcgcfg")
	content := `[local]
kind = file
root = ./public

[prod]
kind    = s3
bucket  = fmcg-reports
prefix  = daily
timeout = 45s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	registry, err := NewRegistry(path)
	require.NoError(t, err)

	// When
	profiles, err := registry.GetProfiles(context.Background())

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"local", "prod"}, profiles)

	src := SourceConfig{Kind: "http", BaseURL: "http://localhost:3000", Timeout: time.Second}
	require.NoError(t, registry.Apply(context.Background(), "prod", &src))
	assert.Equal(t, SourceConfig{
		Kind:    "s3",
		BaseURL: "http://localhost:3000",
		Bucket:  "fmcg-reports",
		Prefix:  "daily",
		Timeout: 45 * time.Second,
	}, src)

	assert.EqualError(t, registry.Apply(context.Background(), "staging", &src), "profile staging not found")
}
