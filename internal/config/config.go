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

// Config holds the forumdex API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Cache     CacheConfig     `yaml:"cache"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search"`
	Answer    AnswerConfig    `yaml:"answer"`
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

// PostgresConfig holds the forum database connection settings.
type PostgresConfig struct {
	DSN            string `yaml:"dsn"`
	MaxOpenConns   int    `yaml:"max_open_conns"`
	MaxIdleConns   int    `yaml:"max_idle_conns"`
	ConnMaxLifeMin int    `yaml:"conn_max_lifetime_min"`
	ReadinessSec   int    `yaml:"readiness_timeout_sec"`
}

// CacheConfig holds the Redis embedding-cache settings.
// The cache is optional: with no addrs every query embedding is recomputed.
type CacheConfig struct {
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	TTLHours int      `yaml:"ttl_hours"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"` // label for logs and metrics
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// SearchConfig holds ranking weights and retrieval bounds.
type SearchConfig struct {
	TextWeight        float64  `yaml:"text_weight"`
	SemanticWeight    float64  `yaml:"semantic_weight"`
	MinSimilarity     float64  `yaml:"min_similarity"` // semantic search floor
	NeighborFloor     float64  `yaml:"neighbor_floor"` // similar-posts floor
	FanOut            int      `yaml:"fan_out"`        // concurrent sub-queries per search
	SubqueryTimeoutMs int      `yaml:"subquery_timeout_ms"`
	TechnicalTerms    []string `yaml:"technical_terms"` // keyword-extractor priority terms
}

// AnswerConfig holds answer-generation settings.
type AnswerConfig struct {
	Model        string `yaml:"model"`
	MaxTokens    int    `yaml:"max_tokens"`
	ContextSize  int    `yaml:"context_size"` // top-N results used as prompt context
	ForumBaseURL string `yaml:"forum_base_url"`
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
	if c.Postgres.MaxOpenConns <= 0 {
		c.Postgres.MaxOpenConns = 10
	}
	if c.Postgres.MaxIdleConns <= 0 {
		c.Postgres.MaxIdleConns = 5
	}
	if c.Postgres.ConnMaxLifeMin <= 0 {
		c.Postgres.ConnMaxLifeMin = 30
	}
	if c.Postgres.ReadinessSec <= 0 {
		c.Postgres.ReadinessSec = 10
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 24 * 7
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 384
	}
	if c.Search.TextWeight <= 0 {
		c.Search.TextWeight = 0.4
	}
	if c.Search.SemanticWeight <= 0 {
		c.Search.SemanticWeight = 0.6
	}
	if c.Search.MinSimilarity <= 0 {
		c.Search.MinSimilarity = 0.3
	}
	if c.Search.NeighborFloor <= 0 {
		c.Search.NeighborFloor = 0.5
	}
	if c.Search.FanOut <= 0 {
		c.Search.FanOut = 6
	}
	if c.Search.SubqueryTimeoutMs <= 0 {
		c.Search.SubqueryTimeoutMs = 2000
	}
	if c.Answer.MaxTokens <= 0 {
		c.Answer.MaxTokens = 400
	}
	if c.Answer.ContextSize <= 0 {
		c.Answer.ContextSize = 5
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Postgres.DSN == "" {
		return fmt.Errorf("postgres.dsn is required")
	}
	if c.Search.MinSimilarity > 1 {
		return fmt.Errorf("search.min_similarity must be in [0,1], got %g", c.Search.MinSimilarity)
	}
	if c.Search.NeighborFloor > 1 {
		return fmt.Errorf("search.neighbor_floor must be in [0,1], got %g", c.Search.NeighborFloor)
	}
	if sum := c.Search.TextWeight + c.Search.SemanticWeight; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("search.text_weight + search.semantic_weight must sum to 1, got %g", sum)
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
