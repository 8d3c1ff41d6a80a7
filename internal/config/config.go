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

// Config holds the cinedex API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Catalog CatalogConfig `yaml:"catalog"`
	Index   IndexConfig   `yaml:"index"`
	Posters PosterConfig  `yaml:"posters"`
	Browse  BrowseConfig  `yaml:"browse"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CatalogConfig holds snapshot source settings.
type CatalogConfig struct {
	// SnapshotPath points at the tabular snapshot produced by the
	// ingestion job. Format is chosen by extension: .csv or .parquet.
	SnapshotPath string `yaml:"snapshot_path"`
}

// IndexConfig holds similarity index settings.
type IndexConfig struct {
	// MaxFeatures caps the TF-IDF vocabulary size.
	MaxFeatures int `yaml:"max_features"`
}

// PosterConfig holds poster URL formatting settings.
type PosterConfig struct {
	BaseURL     string `yaml:"base_url"`
	Size        string `yaml:"size"`
	Placeholder string `yaml:"placeholder"`
}

// BrowseConfig holds listing and pagination settings.
type BrowseConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
	SearchLimit     int `yaml:"search_limit"`
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
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Index.MaxFeatures <= 0 {
		c.Index.MaxFeatures = 5000
	}
	if c.Posters.BaseURL == "" {
		c.Posters.BaseURL = "https://image.tmdb.org/t/p/"
	}
	if c.Posters.Size == "" {
		c.Posters.Size = "w300"
	}
	if c.Posters.Placeholder == "" {
		c.Posters.Placeholder = "/static/placeholder.png"
	}
	if c.Browse.DefaultPageSize <= 0 {
		c.Browse.DefaultPageSize = 24
	}
	if c.Browse.MaxPageSize <= 0 {
		c.Browse.MaxPageSize = 100
	}
	if c.Browse.SearchLimit <= 0 {
		c.Browse.SearchLimit = 50
	}
}

// Validate checks configuration invariants defaults cannot repair.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Catalog.SnapshotPath == "" {
		return fmt.Errorf("catalog.snapshot_path is required")
	}
	switch ext := strings.ToLower(filepath.Ext(c.Catalog.SnapshotPath)); ext {
	case ".csv", ".parquet":
		// ok
	default:
		return fmt.Errorf("catalog.snapshot_path must end in .csv or .parquet, got %q", ext)
	}
	if c.Browse.DefaultPageSize > c.Browse.MaxPageSize {
		return fmt.Errorf(
			"browse.default_page_size %d exceeds browse.max_page_size %d",
			c.Browse.DefaultPageSize, c.Browse.MaxPageSize,
		)
	}
	return nil
}

// findConfigPath locates the environment's config file.
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
