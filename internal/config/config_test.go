package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	assert.Equal(t, "lexical", cfg.Matching.DefaultBackend)
	assert.Equal(t, 5, cfg.Matching.SingleLimit)
	assert.Equal(t, 3, cfg.Matching.PerSourceLimit)
	assert.Equal(t, 3, cfg.Matching.OverallLimit)
	assert.Equal(t, "snowball", cfg.TextNorm.Lemmatizer)
	assert.Equal(t, "modmatch:emb_cache:", cfg.Cache.KeyPrefix)
	assert.Equal(t, 10, cfg.Cache.ReadinessTimeout)
	assert.Equal(t, 256, cfg.Embedding.MaxBatchSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.HTTP.Port = 0 },
			wantErr: "http.port must be between 1 and 65535, got 0",
		},
		{
			name:    "cache without addrs",
			mutate:  func(c *Config) { c.Cache.Enabled = true },
			wantErr: "cache.addrs is required when cache is enabled",
		},
		{
			name:    "provider without model",
			mutate:  func(c *Config) { c.Embedding.BaseURL = "http://localhost:8081/v1" },
			wantErr: "embedding.model is required when a provider is configured",
		},
		{
			name:    "dense without provider",
			mutate:  func(c *Config) { c.Matching.DefaultBackend = "dense" },
			wantErr: `matching.default_backend "dense" requires an embedding provider`,
		},
		{
			name: "dense with provider",
			mutate: func(c *Config) {
				c.Matching.DefaultBackend = "dense"
				c.Embedding.BaseURL = "http://localhost:8081/v1"
				c.Embedding.Model = "intfloat/multilingual-e5-large"
			},
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Matching.DefaultBackend = "bm25" },
			wantErr: `matching.default_backend must be "lexical" or "dense", got "bm25"`,
		},
		{
			name:    "unknown lemmatizer",
			mutate:  func(c *Config) { c.TextNorm.Lemmatizer = "wordnet" },
			wantErr: `textnorm.lemmatizer must be "snowball" or "identity", got "wordnet"`,
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Embedding.Workers = -1 },
			wantErr: "embedding.workers must be >= 0, got -1",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Embedding.TimeoutSec = -5 },
			wantErr: "embedding.timeout_sec must be >= 0, got -5",
		},
		{
			name:    "negative dial timeout",
			mutate:  func(c *Config) { c.Cache.DialTimeoutSec = -1 },
			wantErr: "cache.dial_timeout_sec must be >= 0, got -1",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logging.Format = "logfmt" },
			wantErr: `logging.format must be "json" or "console", got "logfmt"`,
		},
		{
			name: "all problems reported",
			mutate: func(c *Config) {
				c.HTTP.Port = 0
				c.Embedding.Workers = -1
			},
			wantErr: "http.port must be between 1 and 65535, got 0\nembedding.workers must be >= 0, got -1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("MODMATCH_TEST_PORT", "9090")

	got := string(expandEnvVars([]byte("port: ${MODMATCH_TEST_PORT}\nlevel: ${MODMATCH_UNSET:-info}\nkey: ${MODMATCH_UNSET}")))
	assert.Equal(t, "port: 9090\nlevel: info\nkey: ", got)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("MODMATCH_TEST_MODEL", "test-model")
	path := filepath.Join(t.TempDir(), "test.yaml")
	data := `
http:
  port: 8080
embedding:
  base_url: http://localhost:8081/v1
  model: ${MODMATCH_TEST_MODEL}
  workers: 4
matching:
  default_backend: dense
  overall_limit: 5
textnorm:
  extra_stop_words: [gmbh]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "test-model", cfg.Embedding.Model)
	assert.Equal(t, 4, cfg.Embedding.Workers)
	assert.Equal(t, 5, cfg.Matching.OverallLimit)
	assert.Equal(t, 3, cfg.Matching.PerSourceLimit)
	assert.Equal(t, []string{"gmbh"}, cfg.TextNorm.ExtraStopWords)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}
