package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the menulens API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Matching  MatchingConfig  `yaml:"matching"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds the embedding store connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// EmbeddingConfig holds embedding provider settings. The model must match
// the one used by the offline index builder, otherwise query vectors and
// stored catalog vectors live in different spaces.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// CatalogConfig holds the read-only catalog source.
type CatalogConfig struct {
	Path string `yaml:"path"` // JSONL file produced by the offline catalog build
}

// MatchingConfig exposes the numeric knobs of the matching pipeline.
// Defaults are the tuned values of the reference deployment; re-tune per
// catalog rather than editing code.
type MatchingConfig struct {
	MinQueryLen int `yaml:"min_query_len"`

	LexicalTopN   int     `yaml:"lexical_top_n"`
	LexicalCutoff float64 `yaml:"lexical_cutoff"`
	ResultTopK    int     `yaml:"result_top_k"`

	ConfirmThreshold      float64 `yaml:"confirm_threshold"`
	ShortQueryThreshold   float64 `yaml:"short_query_threshold"` // at <=2 chars
	ThreeCharThreshold    float64 `yaml:"three_char_threshold"`  // at exactly 3 chars
	MarginThreshold       float64 `yaml:"margin_threshold"`
	JamoFloor             float64 `yaml:"jamo_floor"`
	CategoryMinConfidence float64 `yaml:"category_min_confidence"`
	CategoryMinKeep       int     `yaml:"category_min_keep"`

	Weights WeightsConfig `yaml:"weights"`
}

// WeightsConfig holds the fusion weights and penalties. The fused score is
// a positively-weighted linear combination of the per-stage signals minus
// penalties, clamped to [0, 2].
type WeightsConfig struct {
	Vector   float64 `yaml:"vector"`
	Exact    float64 `yaml:"exact"`
	Contain  float64 `yaml:"contain"`
	Sequence float64 `yaml:"sequence"`
	Jamo     float64 `yaml:"jamo"`
	Detail   float64 `yaml:"detail"`
	Set      float64 `yaml:"set"`
	Category float64 `yaml:"category"`

	GenericPenalty  float64 `yaml:"generic_penalty"`
	TooShortPenalty float64 `yaml:"too_short_penalty"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

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
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Embedding.TimeoutSec <= 0 {
		c.Embedding.TimeoutSec = 10
	}

	m := &c.Matching
	if m.MinQueryLen <= 0 {
		m.MinQueryLen = 2
	}
	if m.LexicalTopN <= 0 {
		m.LexicalTopN = 200
	}
	if m.LexicalCutoff <= 0 {
		m.LexicalCutoff = 0.40
	}
	if m.ResultTopK <= 0 {
		m.ResultTopK = 5
	}
	if m.ConfirmThreshold <= 0 {
		m.ConfirmThreshold = 0.90
	}
	if m.ShortQueryThreshold <= 0 {
		m.ShortQueryThreshold = 0.985
	}
	if m.ThreeCharThreshold <= 0 {
		m.ThreeCharThreshold = 0.96
	}
	if m.MarginThreshold <= 0 {
		m.MarginThreshold = 0.05
	}
	if m.JamoFloor <= 0 {
		m.JamoFloor = 0.22
	}
	if m.CategoryMinConfidence <= 0 {
		m.CategoryMinConfidence = 0.85
	}
	if m.CategoryMinKeep <= 0 {
		m.CategoryMinKeep = 2
	}

	w := &m.Weights
	if w.Vector <= 0 {
		w.Vector = 0.65
	}
	if w.Exact <= 0 {
		w.Exact = 0.40
	}
	if w.Contain <= 0 {
		w.Contain = 0.22
	}
	if w.Sequence <= 0 {
		w.Sequence = 0.18
	}
	if w.Jamo <= 0 {
		w.Jamo = 0.10
	}
	if w.Detail <= 0 {
		w.Detail = 0.10
	}
	if w.Set <= 0 {
		w.Set = 0.08
	}
	if w.Category <= 0 {
		w.Category = 0.05
	}
	if w.GenericPenalty <= 0 {
		w.GenericPenalty = 0.20
	}
	if w.TooShortPenalty <= 0 {
		w.TooShortPenalty = 0.10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path is required")
	}
	m := c.Matching
	if m.ConfirmThreshold > 1 || m.ShortQueryThreshold > 1 || m.ThreeCharThreshold > 1 {
		return fmt.Errorf("matching thresholds must not exceed 1.0")
	}
	if m.MarginThreshold >= m.ConfirmThreshold {
		return fmt.Errorf(
			"matching.margin_threshold (%v) must be below matching.confirm_threshold (%v)",
			m.MarginThreshold, m.ConfirmThreshold,
		)
	}
	if sum := m.Weights.Vector + m.Weights.Exact + m.Weights.Jamo; sum <= 0 {
		return fmt.Errorf("matching.weights must sum to a positive value")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
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
