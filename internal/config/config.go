package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the modmatch API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Cache     CacheConfig     `yaml:"cache"`
	Matching  MatchingConfig  `yaml:"matching"`
	TextNorm  TextNormConfig  `yaml:"textnorm"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error (default: determined by env)
	Format string `yaml:"format"` // json, console (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int   `yaml:"port"`
	ReadTimeoutSec  int   `yaml:"read_timeout_sec"`
	WriteTimeoutSec int   `yaml:"write_timeout_sec"`
	ShutdownSec     int   `yaml:"shutdown_timeout_sec"`
	MaxBodyBytes    int64 `yaml:"max_body_bytes"`
}

// EmbeddingConfig holds the dense embedding provider settings.
// An empty BaseURL and APIKey disable the dense backend.
type EmbeddingConfig struct {
	Provider     string `yaml:"provider"`
	APIKey       string `yaml:"api_key"`
	BaseURL      string `yaml:"base_url"`
	Model        string `yaml:"model"`
	Dimensions   int    `yaml:"dimensions"`
	Instruction  string `yaml:"instruction"`
	MaxBatchSize int    `yaml:"max_batch_size"`
	Workers      int    `yaml:"workers"`     // 0 = no worker pool
	TimeoutSec   int    `yaml:"timeout_sec"` // per provider call, 0 = none
}

// Enabled reports whether a dense embedding provider is configured.
func (c EmbeddingConfig) Enabled() bool {
	return c.BaseURL != "" || c.APIKey != ""
}

// CacheConfig holds embedding cache settings.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	TTLSec           int      `yaml:"ttl_sec"` // 0 = no expiry
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	DialTimeoutSec   int      `yaml:"dial_timeout_sec"` // 0 = client default
}

// MatchingConfig holds ranking limits and the default backend.
type MatchingConfig struct {
	DefaultBackend string `yaml:"default_backend"` // lexical, dense
	SingleLimit    int    `yaml:"single_limit"`
	PerSourceLimit int    `yaml:"per_source_limit"`
	OverallLimit   int    `yaml:"overall_limit"`
}

// TextNormConfig holds normalization pipeline settings.
type TextNormConfig struct {
	Lemmatizer     string   `yaml:"lemmatizer"` // snowball, identity
	ExtraStopWords []string `yaml:"extra_stop_words"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit YAML path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = 4 << 20
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
	if c.Embedding.MaxBatchSize <= 0 {
		c.Embedding.MaxBatchSize = 256
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "modmatch:emb_cache:"
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Matching.DefaultBackend == "" {
		c.Matching.DefaultBackend = "lexical"
	}
	if c.Matching.SingleLimit <= 0 {
		c.Matching.SingleLimit = 5
	}
	if c.Matching.PerSourceLimit <= 0 {
		c.Matching.PerSourceLimit = 3
	}
	if c.Matching.OverallLimit <= 0 {
		c.Matching.OverallLimit = 3
	}
	if c.TextNorm.Lemmatizer == "" {
		c.TextNorm.Lemmatizer = "snowball"
	}
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) { errs = append(errs, fmt.Errorf(format, args...)) }

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		fail("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		fail("cache.addrs is required when cache is enabled")
	}
	if c.Embedding.Enabled() && c.Embedding.Model == "" {
		fail("embedding.model is required when a provider is configured")
	}
	if c.Embedding.Workers < 0 {
		fail("embedding.workers must be >= 0, got %d", c.Embedding.Workers)
	}
	if c.Embedding.TimeoutSec < 0 {
		fail("embedding.timeout_sec must be >= 0, got %d", c.Embedding.TimeoutSec)
	}
	if c.Cache.DialTimeoutSec < 0 {
		fail("cache.dial_timeout_sec must be >= 0, got %d", c.Cache.DialTimeoutSec)
	}
	switch c.Matching.DefaultBackend {
	case "lexical":
	case "dense":
		if !c.Embedding.Enabled() {
			fail("matching.default_backend %q requires an embedding provider", c.Matching.DefaultBackend)
		}
	default:
		fail("matching.default_backend must be \"lexical\" or \"dense\", got %q", c.Matching.DefaultBackend)
	}
	if l := c.TextNorm.Lemmatizer; l != "snowball" && l != "identity" {
		fail("textnorm.lemmatizer must be \"snowball\" or \"identity\", got %q", l)
	}
	if f := c.Logging.Format; f != "" && f != "json" && f != "console" {
		fail("logging.format must be \"json\" or \"console\", got %q", f)
	}
	return errors.Join(errs...)
}

// findConfigPath returns config/<env>.yaml under the working directory or,
// for tests run from a package directory, under the module root.
func findConfigPath(env string) string {
	rel := filepath.Join("config", env+".yaml")
	_, self, _, _ := runtime.Caller(0)
	root := filepath.Dir(filepath.Dir(filepath.Dir(self)))
	for _, candidate := range []string{rel, filepath.Join(root, rel)} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return rel
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
