package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ModelConfig describes one classifier. Path is a model directory holding
// model.onnx and vocab.txt, or the .onnx file itself. FallbackPath is used
// when Path does not exist (e.g. the base model a fine-tune was built from).
type ModelConfig struct {
	Name         string `json:"name" yaml:"name" toml:"name"`
	Path         string `json:"path" yaml:"path" toml:"path"`
	FallbackPath string `json:"fallback_path,omitempty" yaml:"fallback_path,omitempty" toml:"fallback_path,omitempty"`
	Family       string `json:"family,omitempty" yaml:"family,omitempty" toml:"family,omitempty"`
}

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	Addr         string        `json:"addr" yaml:"addr" toml:"addr"`
	ModelsDir    string        `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	DefaultModel string        `json:"default_model" yaml:"default_model" toml:"default_model"`
	Models       []ModelConfig `json:"models" yaml:"models" toml:"models"`
	Preload      bool          `json:"preload" yaml:"preload" toml:"preload"`

	LoadTimeoutSeconds  int   `json:"load_timeout_seconds" yaml:"load_timeout_seconds" toml:"load_timeout_seconds"`
	InferTimeoutSeconds int   `json:"infer_timeout_seconds" yaml:"infer_timeout_seconds" toml:"infer_timeout_seconds"`
	MaxBodyBytes        int64 `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`

	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format"`

	CORSEnabled bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	CORSMethods []string `json:"cors_methods" yaml:"cors_methods" toml:"cors_methods"`
	CORSHeaders []string `json:"cors_headers" yaml:"cors_headers" toml:"cors_headers"`

	ONNXLibraryPath string `json:"onnx_library_path" yaml:"onnx_library_path" toml:"onnx_library_path"`
	MaxSeqLen       int    `json:"max_seq_len" yaml:"max_seq_len" toml:"max_seq_len"`
	Lowercase       *bool  `json:"lowercase,omitempty" yaml:"lowercase,omitempty" toml:"lowercase,omitempty"`
	UseCUDA         bool   `json:"use_cuda" yaml:"use_cuda" toml:"use_cuda"`
}

const (
	DefaultAddr         = ":8000"
	DefaultMaxBodyBytes = int64(1 << 20)
	DefaultMaxSeqLen    = 512
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
)

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// WithDefaults returns a copy of c with unset fields filled in.
func (c Config) WithDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.MaxSeqLen <= 0 {
		c.MaxSeqLen = DefaultMaxSeqLen
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.Lowercase == nil {
		t := true
		c.Lowercase = &t
	}
	if len(c.CORSMethods) == 0 {
		c.CORSMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(c.CORSHeaders) == 0 {
		c.CORSHeaders = []string{"Content-Type", "X-Log-Level"}
	}
	return c
}

// Validate reports configuration errors that would prevent startup.
func (c Config) Validate() error {
	if len(c.Models) == 0 && c.ModelsDir == "" {
		return fmt.Errorf("no models configured: set models or models_dir")
	}
	seen := make(map[string]struct{}, len(c.Models))
	for i, m := range c.Models {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("models[%d]: name is required", i)
		}
		if strings.TrimSpace(m.Path) == "" {
			return fmt.Errorf("model %q: path is required", m.Name)
		}
		if _, dup := seen[m.Name]; dup {
			return fmt.Errorf("model %q: duplicate name", m.Name)
		}
		seen[m.Name] = struct{}{}
	}
	if c.LoadTimeoutSeconds < 0 || c.InferTimeoutSeconds < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("unsupported log_format %q (console|json)", c.LogFormat)
	}
	return nil
}

// LoadTimeout returns the configured load timeout; zero disables it.
func (c Config) LoadTimeout() time.Duration {
	return time.Duration(c.LoadTimeoutSeconds) * time.Second
}

// InferTimeout returns the configured per-prediction timeout; zero disables it.
func (c Config) InferTimeout() time.Duration {
	return time.Duration(c.InferTimeoutSeconds) * time.Second
}
